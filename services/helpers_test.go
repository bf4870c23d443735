package services

import (
	"context"
	"sync"
	"testing"

	"rumor-detection/database"
	"rumor-detection/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(":memory:?_foreign_keys=on")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Email:          name + "@example.com",
		Username:       name,
		HashedPassword: "x",
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// fakeClassifier returns canned outcomes and counts calls.
type fakeClassifier struct {
	mu         sync.Mutex
	single     ClassifyOutcome
	batch      func(contents []string) []ClassifyOutcome
	calls      int
	batchCalls int
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) ClassifyOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.single
}

func (f *fakeClassifier) ClassifyBatch(_ context.Context, contents []string) []ClassifyOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++
	if f.batch != nil {
		return f.batch(contents)
	}
	out := make([]ClassifyOutcome, len(contents))
	for i := range out {
		out[i] = f.single
	}
	return out
}

func rumorOutcome(confidence float64) ClassifyOutcome {
	return ClassifyOutcome{Result: DetectionResult{
		IsRumor:         true,
		Confidence:      confidence,
		Explanation:     "This content contains unverified claims.",
		Keywords:        []string{"test", "rumor"},
		Sentiment:       "negative",
		Category:        "society",
		FactCheckPoints: []string{"Source not verified"},
		RiskIndicators:  []string{"Unverified claims"},
	}}
}

func mustDetection(t *testing.T, svc *DetectionService, userID uuid.UUID, content string, includeAnalysis bool) *models.Detection {
	t.Helper()
	det, err := svc.DetectSingle(context.Background(), userID, DetectionRequest{Content: content, IncludeAnalysis: includeAnalysis})
	require.NoError(t, err)
	return det
}
