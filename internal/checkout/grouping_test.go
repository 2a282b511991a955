package checkout

import (
	"testing"

	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartItem(vendorID *uuid.UUID, price string, qty int) models.CartItem {
	return models.CartItem{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Quantity:  qty,
		Product: models.Product{
			ID:       uuid.New(),
			VendorID: vendorID,
			Price:    decimal.RequireFromString(price),
		},
	}
}

func TestGroupItemsByVendorPreservesCartOrder(t *testing.T) {
	vendorA := uuid.New()
	vendorB := uuid.New()

	items := []models.CartItem{
		cartItem(&vendorA, "10.00", 1),
		cartItem(nil, "5.00", 2),
		cartItem(&vendorB, "7.50", 1),
		cartItem(&vendorA, "2.50", 4),
	}

	groups := GroupItemsByVendor(items)
	require.Len(t, groups, 3)

	require.NotNil(t, groups[0].Key)
	assert.Equal(t, vendorA, *groups[0].Key)
	assert.Len(t, groups[0].Items, 2)
	assert.True(t, groups[0].Subtotal.Equal(decimal.RequireFromString("20.00")), "got %s", groups[0].Subtotal)

	assert.Nil(t, groups[1].Key)
	assert.True(t, groups[1].Subtotal.Equal(decimal.RequireFromString("10.00")))

	require.NotNil(t, groups[2].Key)
	assert.Equal(t, vendorB, *groups[2].Key)
	assert.True(t, groups[2].Subtotal.Equal(decimal.RequireFromString("7.50")))
}

func TestGroupItemsByVendorEmpty(t *testing.T) {
	assert.Empty(t, GroupItemsByVendor(nil))
}

func TestAllocateDiscountProportionalWithRemainder(t *testing.T) {
	vendorA := uuid.New()
	vendorB := uuid.New()
	vendorC := uuid.New()

	// Three equal groups splitting 10.00: 3.33 + 3.33 + 3.34.
	groups := []VendorGroup{
		{Key: &vendorA, Subtotal: decimal.NewFromInt(30)},
		{Key: &vendorB, Subtotal: decimal.NewFromInt(30)},
		{Key: &vendorC, Subtotal: decimal.NewFromInt(30)},
	}

	shares := AllocateDiscount(groups, decimal.NewFromInt(10), decimal.NewFromInt(90))
	require.Len(t, shares, 3)
	assert.True(t, shares[0].Equal(decimal.RequireFromString("3.33")), "got %s", shares[0])
	assert.True(t, shares[1].Equal(decimal.RequireFromString("3.33")), "got %s", shares[1])
	assert.True(t, shares[2].Equal(decimal.RequireFromString("3.34")), "got %s", shares[2])

	sum := decimal.Zero
	for _, share := range shares {
		sum = sum.Add(share)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(10)))
}

func TestAllocateDiscountUnevenGroups(t *testing.T) {
	vendorA := uuid.New()

	// 0.60 split over 2.40: 1.80 -> 0.45, 0.60 -> 0.15.
	groups := []VendorGroup{
		{Key: &vendorA, Subtotal: decimal.RequireFromString("1.80")},
		{Subtotal: decimal.RequireFromString("0.60")},
	}

	shares := AllocateDiscount(groups, decimal.RequireFromString("0.60"), decimal.RequireFromString("2.40"))
	require.Len(t, shares, 2)
	assert.True(t, shares[0].Equal(decimal.RequireFromString("0.45")), "got %s", shares[0])
	assert.True(t, shares[1].Equal(decimal.RequireFromString("0.15")), "got %s", shares[1])
}

func TestAllocateDiscountZeroDiscount(t *testing.T) {
	groups := []VendorGroup{
		{Subtotal: decimal.NewFromInt(30)},
		{Subtotal: decimal.NewFromInt(70)},
	}

	shares := AllocateDiscount(groups, decimal.Zero, decimal.NewFromInt(100))
	require.Len(t, shares, 2)
	assert.True(t, shares[0].IsZero())
	assert.True(t, shares[1].IsZero())
}

func TestAllocateDiscountSingleGroupGetsAll(t *testing.T) {
	groups := []VendorGroup{{Subtotal: decimal.NewFromInt(42)}}

	shares := AllocateDiscount(groups, decimal.RequireFromString("6.99"), decimal.NewFromInt(42))
	require.Len(t, shares, 1)
	assert.True(t, shares[0].Equal(decimal.RequireFromString("6.99")))
}
