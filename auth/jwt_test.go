package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute, time.Hour)
	userID := uuid.New()

	pair, err := m.IssuePair(userID)
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)

	got, err := m.Parse(pair.AccessToken, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	got, err = m.Parse(pair.RefreshToken, RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenManager_RejectsWrongType(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute, time.Hour)
	pair, err := m.IssuePair(uuid.New())
	require.NoError(t, err)

	_, err = m.Parse(pair.RefreshToken, AccessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = m.Parse(pair.AccessToken, RefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute, time.Hour)
	issued := time.Now().Add(-2 * time.Minute)
	m.now = func() time.Time { return issued }

	token, err := m.Issue(uuid.New(), AccessToken)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute, time.Hour)
	other := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Minute, time.Hour)

	token, err := other.Issue(uuid.New(), AccessToken)
	require.NoError(t, err)

	_, err = m.Parse(token, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsNoneAlgorithm(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute, time.Hour)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Type: AccessToken,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Parse(token, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("testpass123")
	require.NoError(t, err)
	assert.NotEqual(t, "testpass123", hashed)
	assert.True(t, CheckPassword(hashed, "testpass123"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}
