package checkout

import (
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorGroup is one vendor's slice of the cart. Key is nil for items sold by
// the platform itself; that group is treated like any other at checkout.
type VendorGroup struct {
	Key      *uuid.UUID
	Items    []models.CartItem
	Subtotal decimal.Decimal
}

// GroupItemsByVendor partitions cart items by the vendor of their product.
// Groups are ordered by first appearance in the cart so allocation and order
// creation stay deterministic.
func GroupItemsByVendor(items []models.CartItem) []VendorGroup {
	groups := make([]VendorGroup, 0)
	index := make(map[uuid.UUID]int)
	platformIdx := -1

	for _, item := range items {
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))

		if item.Product.VendorID == nil {
			if platformIdx < 0 {
				groups = append(groups, VendorGroup{Subtotal: decimal.Zero})
				platformIdx = len(groups) - 1
			}
			groups[platformIdx].Items = append(groups[platformIdx].Items, item)
			groups[platformIdx].Subtotal = groups[platformIdx].Subtotal.Add(lineTotal)
			continue
		}

		vendorID := *item.Product.VendorID
		idx, ok := index[vendorID]
		if !ok {
			key := vendorID
			groups = append(groups, VendorGroup{Key: &key, Subtotal: decimal.Zero})
			idx = len(groups) - 1
			index[vendorID] = idx
		}
		groups[idx].Items = append(groups[idx].Items, item)
		groups[idx].Subtotal = groups[idx].Subtotal.Add(lineTotal)
	}

	return groups
}

// AllocateDiscount splits a checkout-level discount across vendor groups in
// proportion to their subtotals. Every share except the last is rounded to two
// decimal places; the last group receives the exact remainder so the shares
// always sum to the full discount.
func AllocateDiscount(groups []VendorGroup, discount, total decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(groups))
	for i := range shares {
		shares[i] = decimal.Zero
	}
	if len(groups) == 0 || !discount.IsPositive() || !total.IsPositive() {
		return shares
	}

	allocated := decimal.Zero
	for i, group := range groups {
		if i == len(groups)-1 {
			shares[i] = discount.Sub(allocated)
			break
		}
		share := discount.Mul(group.Subtotal).Div(total).Round(2)
		shares[i] = share
		allocated = allocated.Add(share)
	}
	return shares
}
