package services

import (
	"context"
	"testing"

	"rumor-detection/auth"
	"rumor-detection/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, svc *UserService, email, username string) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{Email: email, Username: username, Password: "s3cret-pass"})
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	user := registerUser(t, svc, "  Alice@Example.COM ", "alice")

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsSuperuser)
	assert.NotEqual(t, "s3cret-pass", user.HashedPassword)
	assert.True(t, auth.CheckPassword(user.HashedPassword, "s3cret-pass"))
}

func TestRegister_Duplicates(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	registerUser(t, svc, "alice@example.com", "alice")

	_, err := svc.Register(context.Background(), RegisterInput{Email: "ALICE@example.com", Username: "other", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "other@example.com", Username: "alice", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	registered := registerUser(t, svc, "alice@example.com", "alice")

	user, err := svc.Authenticate(context.Background(), "Alice@Example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, db.Model(registered).Update("is_active", false).Error)
	_, err = svc.Authenticate(context.Background(), "alice@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestGetByID_User(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	registered := registerUser(t, svc, "alice@example.com", "alice")

	user, err := svc.GetByID(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdate(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	alice := registerUser(t, svc, "alice@example.com", "alice")
	registerUser(t, svc, "bob@example.com", "bob")

	taken := "bob"
	_, err := svc.Update(context.Background(), alice, UpdateUserInput{Username: &taken})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	takenEmail := "BOB@example.com"
	_, err = svc.Update(context.Background(), alice, UpdateUserInput{Email: &takenEmail})
	assert.ErrorIs(t, err, ErrEmailTaken)

	same := "alice@example.com"
	name := "alice2"
	updated, err := svc.Update(context.Background(), alice, UpdateUserInput{Email: &same, Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "alice@example.com", updated.Email)

	unchanged, err := svc.Update(context.Background(), updated, UpdateUserInput{})
	require.NoError(t, err)
	assert.Equal(t, "alice2", unchanged.Username)
}

func TestUpdatePassword(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	alice := registerUser(t, svc, "alice@example.com", "alice")

	err := svc.UpdatePassword(context.Background(), alice, "wrong", "new-password")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	require.NoError(t, svc.UpdatePassword(context.Background(), alice, "s3cret-pass", "new-password"))

	_, err = svc.Authenticate(context.Background(), "alice@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(context.Background(), "alice@example.com", "new-password")
	assert.NoError(t, err)
}
