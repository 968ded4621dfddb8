package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, h.Compare(hash, "s3cret-pass"))
	assert.False(t, h.Compare(hash, "wrong"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestNewBcryptHasherRejectsInvalidCost(t *testing.T) {
	for _, cost := range []int{0, -1, bcrypt.MaxCost + 1} {
		_, err := NewBcryptHasher(cost)
		assert.Error(t, err, "cost %d", cost)
	}
}

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	tok, exp, err := m.GenerateAccessToken(42, "ADMIN", "sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "sid-1", claims.SessionID)
}

func TestJWTManagerRejectsForeignAndExpiredTokens(t *testing.T) {
	tok, _, err := NewJWTManager("other", time.Minute).GenerateAccessToken(1, "USER", "s")
	require.NoError(t, err)
	_, err = NewJWTManager("secret", time.Minute).ParseAccessToken(tok)
	assert.Error(t, err)

	expired, _, err := NewJWTManager("secret", -time.Minute).GenerateAccessToken(1, "USER", "s")
	require.NoError(t, err)
	_, err = NewJWTManager("secret", time.Minute).ParseAccessToken(expired)
	assert.Error(t, err)
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "user:session:7", SessionKey(7))
}
