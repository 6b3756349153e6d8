package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/domain/user"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const (
	minNameLength     = 2
	minPasswordLength = 6
)

type SignupUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewSignupUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *SignupUseCase {
	return &SignupUseCase{userRepo: repo, jwtSvc: jwtSvc, logger: log}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Execute creates the account and signs the user in straight away.
func (uc *SignupUseCase) Execute(ctx context.Context, input SignupInput) (*LoginOutput, error) {
	ctx, span := tracer.Start(ctx, "Signup")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateSignup(name, email, input.Password); err != nil {
		span.RecordError(err)
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		span.RecordError(err)
		return nil, err
	}
	uc.logger.Info("User signed up", zap.String("user_id", u.ID.String()))

	return issue(uc.jwtSvc, u)
}

func validateSignup(name, email, password string) error {
	var fields []string
	if len([]rune(name)) < minNameLength {
		fields = append(fields, "name")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		fields = append(fields, "email")
	}
	if len(password) < minPasswordLength {
		fields = append(fields, "password")
	}
	if len(fields) == 0 {
		return nil
	}
	return &portfolio.ValidationError{
		Fields: fields,
		Reason: "name needs 2+ characters, email must be valid, password needs 6+ characters",
	}
}
