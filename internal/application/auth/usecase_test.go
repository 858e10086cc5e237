package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	repos := memory.New().Repositories()
	return auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "almacen-test"})
}

func TestEnsureAdmin_SoloConAlmacenVacio(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "admin@almacen.local", "cambiar123", "")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "otro@almacen.local", "cambiar123", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = newAuth(t).EnsureAdmin(ctx, "", "", "")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestLogin_TokenLlevaNombreYRol(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.EnsureAdmin(ctx, "admin@almacen.local", "cambiar123", "Dora")
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ADMIN@almacen.local", Password: "cambiar123"})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.User.Role)

	userID, name, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "Dora", name)
	assert.Equal(t, "admin", role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.EnsureAdmin(ctx, "admin@almacen.local", "cambiar123", "")
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@almacen.local", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@almacen.local", Password: "cambiar123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
