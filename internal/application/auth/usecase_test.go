package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	uc := auth.NewAuthUseCase(memory.New().Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
	created, err := uc.EnsureUser(context.Background(), "admin", "password1")
	require.NoError(t, err)
	require.True(t, created)
	return uc
}

func TestLogin_IssuesTokenForUsername(t *testing.T) {
	uc := newAuth(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, auth.TokenType, out.TokenType)

	username, err := jwt.Parse(secret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestLogin_Failures(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEnsureUser_DoesNotOverwrite(t *testing.T) {
	uc := newAuth(t)

	created, err := uc.EnsureUser(context.Background(), "admin", "other-password")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "password1"})
	assert.NoError(t, err)

	_, err = uc.EnsureUser(context.Background(), "", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
