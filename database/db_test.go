package database

import (
	"testing"

	"rumor-detection/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestOpenAndMigrate(t *testing.T) {
	db, err := Open(":memory:?_foreign_keys=on")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []any{&models.User{}, &models.Detection{}, &models.Analysis{}, &models.PropagationNode{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}

	user := models.User{Email: "a@example.com", Username: "alice", HashedPassword: "x"}
	require.NoError(t, db.Create(&user).Error)
	assert.Equal(t, "UTC", user.CreatedAt.Location().String())

	det := models.Detection{UserID: user.ID, Content: "text", Confidence: 0.5, RiskLevel: models.RiskLow}
	require.NoError(t, db.Create(&det).Error)
	require.NoError(t, db.Create(&models.Analysis{DetectionID: det.ID, Keywords: datatypes.JSONSlice[string]{"a"}}).Error)

	// Deleting the user cascades through detections to analyses.
	require.NoError(t, db.Delete(&user).Error)

	var count int64
	require.NoError(t, db.Model(&models.Analysis{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUniqueEmail(t *testing.T) {
	db, err := Open(":memory:?_foreign_keys=on")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.NoError(t, db.Create(&models.User{Email: "a@example.com", Username: "alice", HashedPassword: "x"}).Error)
	assert.Error(t, db.Create(&models.User{Email: "a@example.com", Username: "bob", HashedPassword: "x"}).Error)
}
