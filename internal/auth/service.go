package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bazaarly/bazaarly-backend/internal/users"
	"github.com/bazaarly/bazaarly-backend/internal/vendors"
	pkgauth "github.com/bazaarly/bazaarly-backend/pkg/auth"
	"github.com/bazaarly/bazaarly-backend/pkg/auth/session"
	"github.com/bazaarly/bazaarly-backend/pkg/config"
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	pkgerrors "github.com/bazaarly/bazaarly-backend/pkg/errors"
	"github.com/bazaarly/bazaarly-backend/pkg/security"
	"gorm.io/gorm"
)

type sessionManager interface {
	Start(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

// Service exposes account registration and session lifecycle.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Result, error)
	Login(ctx context.Context, input LoginInput) (*Result, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	userRepo    users.Repository
	vendorRepo  vendors.Repository
	sessions    sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService builds the auth service.
func NewService(
	userRepo users.Repository,
	vendorRepo vendors.Repository,
	sessions sessionManager,
	jwtCfg config.JWTConfig,
	passwordCfg config.PasswordConfig,
) (Service, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if vendorRepo == nil {
		return nil, fmt.Errorf("vendors repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{
		userRepo:    userRepo,
		vendorRepo:  vendorRepo,
		sessions:    sessions,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

// Register creates a customer account and opens a session for it.
func (s *service) Register(ctx context.Context, input RegisterInput) (*Result, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user, err := s.userRepo.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         enums.UserRoleCustomer,
	})
	if err != nil {
		return nil, err
	}

	return s.issueSession(ctx, user)
}

// Login verifies credentials and opens a session.
func (s *service) Login(ctx context.Context, input LoginInput) (*Result, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account disabled")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		return nil, err
	}

	return s.issueSession(ctx, user)
}

// Logout revokes the session behind the presented token.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	return nil
}

func (s *service) issueSession(ctx context.Context, user *models.User) (*Result, error) {
	vendorApproved := false
	if user.VendorID != nil {
		vendor, err := s.vendorRepo.FindByID(ctx, *user.VendorID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if vendor != nil {
			vendorApproved = vendor.Status == enums.VendorStatusApproved
		}
	}

	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID:         user.ID,
		Role:           user.Role,
		IsStaff:        user.IsStaff,
		VendorID:       user.VendorID,
		VendorApproved: vendorApproved,
		JTI:            accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}
	if err := s.sessions.Start(ctx, accessID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "starting session")
	}

	return &Result{User: user, AccessToken: token}, nil
}
