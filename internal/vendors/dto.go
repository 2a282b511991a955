package vendors

import (
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
)

// SignupInput captures a vendor-admin signup request.
type SignupInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`

	VendorName    string  `json:"vendor_name" validate:"required"`
	Slug          string  `json:"slug" validate:"required,lowercase"`
	Description   *string `json:"description,omitempty"`
	BusinessEmail *string `json:"business_email,omitempty" validate:"omitempty,email"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	Website       *string `json:"website,omitempty" validate:"omitempty,url"`
	About         *string `json:"about,omitempty"`
}

// SignupResult returns the created pending vendor plus an access token for the
// vendor admin account.
type SignupResult struct {
	Vendor      *models.Vendor `json:"vendor"`
	User        *models.User   `json:"user"`
	AccessToken string         `json:"access_token"`
}

// UpdateInput captures the self-service vendor profile update.
type UpdateInput struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	BusinessEmail *string `json:"business_email,omitempty" validate:"omitempty,email"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	Website       *string `json:"website,omitempty" validate:"omitempty,url"`
	LogoURL       *string `json:"logo_url,omitempty" validate:"omitempty,url"`
	About         *string `json:"about,omitempty"`
}

// VendorList wraps a paginated vendor page plus the next cursor.
type VendorList struct {
	Vendors    []models.Vendor `json:"vendors"`
	NextCursor string          `json:"next_cursor,omitempty"`
}
