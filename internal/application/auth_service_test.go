package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
)

func TestAuthLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "ana@example.com")
	jwt := helpers.NewJWTManager("secret", time.Hour)
	auth := NewAuthService(f.store.Users(), f.users.Hasher, jwt, nil, 0, Observers{})

	view, tok, err := auth.Login(ctx, "ana@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, view.ID)
	claims, err := jwt.ParseAccessToken(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "USER", claims.Role)
	assert.NotEmpty(t, claims.SessionID)

	_, _, err = auth.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = auth.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	me, err := auth.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", me.Email)
	assert.NoError(t, auth.Logout(ctx, u.ID))
}
