package auth

import (
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID         uuid.UUID
	Role           enums.UserRole
	IsStaff        bool
	VendorID       *uuid.UUID
	VendorApproved bool
	JTI            string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID         uuid.UUID      `json:"user_id"`
	Role           enums.UserRole `json:"role"`
	IsStaff        bool           `json:"is_staff,omitempty"`
	VendorID       *uuid.UUID     `json:"vendor_id,omitempty"`
	VendorApproved bool           `json:"vendor_approved,omitempty"`
	jwt.RegisteredClaims
}
