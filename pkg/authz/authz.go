package authz

import (
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	"github.com/google/uuid"
)

// Actor is the explicit per-request identity handed to every protected
// operation: typed role plus the vendor linkage needed for scoping decisions.
type Actor struct {
	UserID         uuid.UUID
	Role           enums.UserRole
	IsStaff        bool
	VendorID       *uuid.UUID
	VendorApproved bool
}

// OrderScope describes which orders an actor may see.
type OrderScope int

const (
	// ScopeOwn restricts access to orders the actor placed.
	ScopeOwn OrderScope = iota
	// ScopeVendor restricts access to orders belonging to the actor's vendor.
	ScopeVendor
	// ScopeAll grants unrestricted access.
	ScopeAll
)

// IsPlatformStaff reports whether the actor operates the platform itself.
func (a Actor) IsPlatformStaff() bool {
	return a.IsStaff || a.Role == enums.UserRoleAdmin || a.Role == enums.UserRoleManager
}

// IsApprovedVendorAdmin reports whether the actor administers an approved vendor.
func (a Actor) IsApprovedVendorAdmin() bool {
	return a.Role == enums.UserRoleVendorAdmin && a.VendorID != nil && a.VendorApproved
}

// OrdersScope resolves the widest order visibility the actor holds.
func (a Actor) OrdersScope() OrderScope {
	switch {
	case a.IsPlatformStaff():
		return ScopeAll
	case a.Role == enums.UserRoleVendorAdmin && a.VendorID != nil:
		return ScopeVendor
	default:
		return ScopeOwn
	}
}

// CanUpdateOrderStatus gates the order status mutation endpoint. Vendor admins
// pass the gate only when approved; the per-order vendor match is enforced by
// the orders service so cross-vendor lookups read as not-found.
func CanUpdateOrderStatus(a Actor) bool {
	return a.IsPlatformStaff() || a.IsApprovedVendorAdmin()
}

// CanManageVendors gates vendor approve/reject/suspend and unfiltered listing.
func CanManageVendors(a Actor) bool {
	return a.IsPlatformStaff()
}

// OwnsVendor reports whether the actor is tied to the given vendor.
func (a Actor) OwnsVendor(vendorID uuid.UUID) bool {
	return a.VendorID != nil && *a.VendorID == vendorID
}
