package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

func newUseCases() (*SignupUseCase, *LoginUseCase, *auth.JWTService) {
	repo := persistence.NewMemoryUserRepo()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	log := logger.NewNopLogger()
	return NewSignupUseCase(repo, jwtSvc, log), NewLoginUseCase(repo, jwtSvc, log), jwtSvc
}

func TestSignupThenLogin(t *testing.T) {
	ctx := context.Background()
	signup, login, jwtSvc := newUseCases()

	out, err := signup.Execute(ctx, SignupInput{Name: " Jane ", Email: "Jane@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", out.Email)
	assert.Equal(t, "Jane", out.DisplayName)

	claims, err := jwtSvc.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, out.UID, claims.UID)

	in, err := login.Execute(ctx, LoginInput{Email: "JANE@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, out.UID, in.UID)

	_, err = login.Execute(ctx, LoginInput{Email: "jane@example.com", Password: "wrong!!"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = login.Execute(ctx, LoginInput{Email: "ghost@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestSignup_Validation(t *testing.T) {
	signup, _, _ := newUseCases()

	_, err := signup.Execute(context.Background(), SignupInput{Name: "J", Email: "not-an-email", Password: "123"})

	var verr *portfolio.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"name", "email", "password"}, verr.Fields)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	signup, _, _ := newUseCases()

	_, err := signup.Execute(ctx, SignupInput{Name: "Jane", Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = signup.Execute(ctx, SignupInput{Name: "Other", Email: "JANE@example.com", Password: "secret2"})

	assert.ErrorIs(t, err, apperror.ErrConflict)
}
