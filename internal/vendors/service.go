package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bazaarly/bazaarly-backend/internal/users"
	"github.com/bazaarly/bazaarly-backend/pkg/auth"
	"github.com/bazaarly/bazaarly-backend/pkg/auth/session"
	"github.com/bazaarly/bazaarly-backend/pkg/authz"
	"github.com/bazaarly/bazaarly-backend/pkg/config"
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	pkgerrors "github.com/bazaarly/bazaarly-backend/pkg/errors"
	"github.com/bazaarly/bazaarly-backend/pkg/pagination"
	"github.com/bazaarly/bazaarly-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type sessionStarter interface {
	Start(ctx context.Context, accessID string) error
}

type service struct {
	tx          txRunner
	repo        Repository
	userRepo    users.Repository
	sessions    sessionStarter
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService builds the vendors service.
func NewService(
	tx txRunner,
	repo Repository,
	userRepo users.Repository,
	sessions sessionStarter,
	jwtCfg config.JWTConfig,
	passwordCfg config.PasswordConfig,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("vendors repository required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session starter required")
	}
	return &service{
		tx:          tx,
		repo:        repo,
		userRepo:    userRepo,
		sessions:    sessions,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

// Signup creates a pending vendor plus its vendor-admin account in one
// transaction and returns a ready-to-use access token.
func (s *service) Signup(ctx context.Context, input SignupInput) (*SignupResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	slug := strings.ToLower(strings.TrimSpace(input.Slug))

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	var createdUser *models.User
	var createdVendor *models.Vendor
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		userRepo := s.userRepo.WithTx(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if _, err := repo.FindBySlug(ctx, slug); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "vendor slug already taken")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		createdUser, err = userRepo.Create(ctx, &models.User{
			Email:        email,
			PasswordHash: hash,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Role:         enums.UserRoleVendorAdmin,
		})
		if err != nil {
			return err
		}

		createdVendor, err = repo.Create(ctx, &models.Vendor{
			OwnerID:       createdUser.ID,
			Name:          input.VendorName,
			Slug:          slug,
			Description:   input.Description,
			BusinessEmail: input.BusinessEmail,
			Phone:         input.Phone,
			Address:       input.Address,
			Website:       input.Website,
			About:         input.About,
			Status:        enums.VendorStatusPending,
		})
		if err != nil {
			return err
		}

		return userRepo.AttachVendor(ctx, createdUser.ID, createdVendor.ID)
	})
	if err != nil {
		return nil, err
	}
	createdUser.VendorID = &createdVendor.ID

	accessID := session.NewAccessID()
	token, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		UserID:   createdUser.ID,
		Role:     enums.UserRoleVendorAdmin,
		VendorID: &createdVendor.ID,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}
	if err := s.sessions.Start(ctx, accessID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "starting session")
	}

	return &SignupResult{
		Vendor:      createdVendor,
		User:        createdUser,
		AccessToken: token,
	}, nil
}

// Me returns the vendor owned by the acting vendor admin.
func (s *service) Me(ctx context.Context, actor authz.Actor) (*models.Vendor, error) {
	if actor.VendorID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	return s.findVendor(ctx, *actor.VendorID)
}

// UpdateMe applies a self-service profile update to the actor's vendor.
func (s *service) UpdateMe(ctx context.Context, actor authz.Actor, input UpdateInput) (*models.Vendor, error) {
	if actor.VendorID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.BusinessEmail != nil {
		updates["business_email"] = *input.BusinessEmail
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Website != nil {
		updates["website"] = *input.Website
	}
	if input.LogoURL != nil {
		updates["logo_url"] = *input.LogoURL
	}
	if input.About != nil {
		updates["about"] = *input.About
	}

	if err := s.repo.Update(ctx, *actor.VendorID, updates); err != nil {
		return nil, err
	}
	return s.findVendor(ctx, *actor.VendorID)
}

// List returns vendors. Platform staff see every status; everyone else only
// approved storefronts.
func (s *service) List(ctx context.Context, actor authz.Actor, params pagination.Params, status *enums.VendorStatus) (*VendorList, error) {
	if !authz.CanManageVendors(actor) {
		approved := enums.VendorStatusApproved
		status = &approved
	}
	return s.repo.List(ctx, params, status)
}

// Approve moves a pending or suspended vendor into the approved state.
func (s *service) Approve(ctx context.Context, actor authz.Actor, vendorID uuid.UUID) (*models.Vendor, error) {
	return s.review(ctx, actor, vendorID, enums.VendorStatusApproved, nil)
}

// Reject declines a pending vendor, recording the reason.
func (s *service) Reject(ctx context.Context, actor authz.Actor, vendorID uuid.UUID, reason string) (*models.Vendor, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rejection reason required")
	}
	return s.review(ctx, actor, vendorID, enums.VendorStatusRejected, &reason)
}

// Suspend takes an approved vendor off the marketplace.
func (s *service) Suspend(ctx context.Context, actor authz.Actor, vendorID uuid.UUID) (*models.Vendor, error) {
	return s.review(ctx, actor, vendorID, enums.VendorStatusSuspended, nil)
}

func (s *service) review(ctx context.Context, actor authz.Actor, vendorID uuid.UUID, status enums.VendorStatus, reason *string) (*models.Vendor, error) {
	if !authz.CanManageVendors(actor) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to manage vendors")
	}

	vendor, err := s.findVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Status == status {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "vendor already in requested state")
	}

	reviewer := actor.UserID
	updates := map[string]any{
		"status":      status,
		"reviewed_at": s.now().UTC(),
		"reviewed_by": reviewer,
	}
	if reason != nil {
		updates["rejection_reason"] = *reason
	}
	if err := s.repo.Update(ctx, vendorID, updates); err != nil {
		return nil, err
	}
	return s.findVendor(ctx, vendorID)
}

func (s *service) findVendor(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, err
	}
	return vendor, nil
}
