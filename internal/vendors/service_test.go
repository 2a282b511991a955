package vendors

import (
	"context"
	"testing"
	"time"

	"github.com/bazaarly/bazaarly-backend/internal/users"
	"github.com/bazaarly/bazaarly-backend/pkg/authz"
	"github.com/bazaarly/bazaarly-backend/pkg/config"
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	pkgerrors "github.com/bazaarly/bazaarly-backend/pkg/errors"
	"github.com/bazaarly/bazaarly-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubVendorRepo struct {
	vendors     map[uuid.UUID]*models.Vendor
	lastUpdates map[string]any
	lastStatus  *enums.VendorStatus
}

func newStubVendorRepo() *stubVendorRepo {
	return &stubVendorRepo{vendors: make(map[uuid.UUID]*models.Vendor)}
}

func (s *stubVendorRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubVendorRepo) Create(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	s.vendors[vendor.ID] = vendor
	return vendor, nil
}

func (s *stubVendorRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor, ok := s.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *vendor
	return &copied, nil
}

func (s *stubVendorRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Vendor, error) {
	for _, vendor := range s.vendors {
		if vendor.OwnerID == ownerID {
			return vendor, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubVendorRepo) FindBySlug(ctx context.Context, slug string) (*models.Vendor, error) {
	for _, vendor := range s.vendors {
		if vendor.Slug == slug {
			return vendor, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubVendorRepo) List(ctx context.Context, params pagination.Params, status *enums.VendorStatus) (*VendorList, error) {
	s.lastStatus = status
	return &VendorList{}, nil
}

func (s *stubVendorRepo) Update(ctx context.Context, vendorID uuid.UUID, updates map[string]any) error {
	s.lastUpdates = updates
	vendor, ok := s.vendors[vendorID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status, ok := updates["status"].(enums.VendorStatus); ok {
		vendor.Status = status
	}
	if reason, ok := updates["rejection_reason"].(string); ok {
		vendor.RejectionReason = &reason
	}
	return nil
}

type stubUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (s *stubUserRepo) WithTx(tx *gorm.DB) users.Repository { return s }

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) AttachVendor(ctx context.Context, userID, vendorID uuid.UUID) error {
	if user, ok := s.users[userID]; ok {
		user.VendorID = &vendorID
	}
	return nil
}

func (s *stubUserRepo) TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return nil
}

type stubSessions struct {
	started []string
}

func (s *stubSessions) Start(ctx context.Context, accessID string) error {
	s.started = append(s.started, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "bazaarly-test",
		ExpirationMinutes: 15,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func newTestVendorService(t *testing.T, repo Repository) Service {
	t.Helper()
	return newVendorServiceWith(t, repo, newStubUserRepo(), &stubSessions{})
}

func newVendorServiceWith(t *testing.T, repo Repository, userRepo users.Repository, sessions *stubSessions) Service {
	t.Helper()
	svc, err := NewService(stubTx{}, repo, userRepo, sessions, testJWTConfig(), testPasswordConfig())
	require.NoError(t, err)
	return svc
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr, "expected app error, got %v", err)
	assert.Equal(t, code, appErr.Code())
}

func seedVendor(repo *stubVendorRepo, status enums.VendorStatus) *models.Vendor {
	vendor := &models.Vendor{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Name:    "Juniper & Pine",
		Slug:    "juniper-pine",
		Status:  status,
	}
	repo.vendors[vendor.ID] = vendor
	return vendor
}

func TestListFiltersForNonStaff(t *testing.T) {
	ctx := context.Background()
	repo := newStubVendorRepo()
	svc := newTestVendorService(t, repo)

	customer := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleCustomer}
	_, err := svc.List(ctx, customer, pagination.Params{}, nil)
	require.NoError(t, err)
	require.NotNil(t, repo.lastStatus)
	assert.Equal(t, enums.VendorStatusApproved, *repo.lastStatus)

	admin := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}
	_, err = svc.List(ctx, admin, pagination.Params{}, nil)
	require.NoError(t, err)
	assert.Nil(t, repo.lastStatus)
}

func TestApproveRequiresStaff(t *testing.T) {
	ctx := context.Background()
	repo := newStubVendorRepo()
	svc := newTestVendorService(t, repo)
	vendor := seedVendor(repo, enums.VendorStatusPending)

	customer := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleCustomer}
	_, err := svc.Approve(ctx, customer, vendor.ID)
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestApprovePendingVendor(t *testing.T) {
	ctx := context.Background()
	repo := newStubVendorRepo()
	svc := newTestVendorService(t, repo)
	vendor := seedVendor(repo, enums.VendorStatusPending)

	admin := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}
	approved, err := svc.Approve(ctx, admin, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.VendorStatusApproved, approved.Status)
	assert.Contains(t, repo.lastUpdates, "reviewed_at")
	assert.Contains(t, repo.lastUpdates, "reviewed_by")
}

func TestApproveAlreadyApproved(t *testing.T) {
	ctx := context.Background()
	repo := newStubVendorRepo()
	svc := newTestVendorService(t, repo)
	vendor := seedVendor(repo, enums.VendorStatusApproved)

	admin := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}
	_, err := svc.Approve(ctx, admin, vendor.ID)
	assertCode(t, err, pkgerrors.CodeStateConflict)
}

func TestRejectRequiresReason(t *testing.T) {
	ctx := context.Background()
	repo := newStubVendorRepo()
	svc := newTestVendorService(t, repo)
	vendor := seedVendor(repo, enums.VendorStatusPending)

	admin := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}
	_, err := svc.Reject(ctx, admin, vendor.ID, "  ")
	assertCode(t, err, pkgerrors.CodeValidation)

	rejected, err := svc.Reject(ctx, admin, vendor.ID, "incomplete business details")
	require.NoError(t, err)
	assert.Equal(t, enums.VendorStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "incomplete business details", *rejected.RejectionReason)
}

func TestMeRequiresVendorLink(t *testing.T) {
	ctx := context.Background()
	repo := newStubVendorRepo()
	svc := newTestVendorService(t, repo)

	actor := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleVendorAdmin}
	_, err := svc.Me(ctx, actor)
	assertCode(t, err, pkgerrors.CodeNotFound)

	vendor := seedVendor(repo, enums.VendorStatusApproved)
	actor.VendorID = &vendor.ID
	found, err := svc.Me(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, found.ID)
}

func TestSuspendApprovedVendor(t *testing.T) {
	ctx := context.Background()
	repo := newStubVendorRepo()
	svc := newTestVendorService(t, repo)
	vendor := seedVendor(repo, enums.VendorStatusApproved)

	manager := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleManager}
	suspended, err := svc.Suspend(ctx, manager, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.VendorStatusSuspended, suspended.Status)
}

func TestUpdateMePatchesProfile(t *testing.T) {
	ctx := context.Background()
	repo := newStubVendorRepo()
	svc := newTestVendorService(t, repo)
	vendor := seedVendor(repo, enums.VendorStatusApproved)

	actor := authz.Actor{
		UserID:         vendor.OwnerID,
		Role:           enums.UserRoleVendorAdmin,
		VendorID:       &vendor.ID,
		VendorApproved: true,
	}

	name := "Juniper & Pine Goods"
	phone := "+1-555-0100"
	_, err := svc.UpdateMe(ctx, actor, UpdateInput{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, name, repo.lastUpdates["name"])
	assert.Equal(t, phone, repo.lastUpdates["phone"])
}

func TestSignupCreatesPendingVendorAndAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newStubVendorRepo()
	userRepo := newStubUserRepo()
	sessions := &stubSessions{}
	svc := newVendorServiceWith(t, repo, userRepo, sessions)

	result, err := svc.Signup(ctx, SignupInput{
		Email:      "Owner@Example.com",
		Password:   "correct-horse-battery",
		FirstName:  "Rowan",
		LastName:   "Ellis",
		VendorName: "Juniper & Pine",
		Slug:       "juniper-pine",
	})
	require.NoError(t, err)

	assert.Equal(t, enums.VendorStatusPending, result.Vendor.Status)
	assert.Equal(t, enums.UserRoleVendorAdmin, result.User.Role)
	assert.Equal(t, "owner@example.com", result.User.Email)
	require.NotNil(t, result.User.VendorID)
	assert.Equal(t, result.Vendor.ID, *result.User.VendorID)
	assert.NotEmpty(t, result.AccessToken)
	assert.Len(t, sessions.started, 1)
}

func TestSignupRejectsDuplicateEmailAndSlug(t *testing.T) {
	ctx := context.Background()
	repo := newStubVendorRepo()
	userRepo := newStubUserRepo()
	svc := newVendorServiceWith(t, repo, userRepo, &stubSessions{})

	input := SignupInput{
		Email:      "owner@example.com",
		Password:   "correct-horse-battery",
		FirstName:  "Rowan",
		LastName:   "Ellis",
		VendorName: "Juniper & Pine",
		Slug:       "juniper-pine",
	}
	_, err := svc.Signup(ctx, input)
	require.NoError(t, err)

	_, err = svc.Signup(ctx, input)
	assertCode(t, err, pkgerrors.CodeConflict)

	input.Email = "second@example.com"
	_, err = svc.Signup(ctx, input)
	assertCode(t, err, pkgerrors.CodeConflict)
}
