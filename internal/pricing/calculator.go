package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bazaarly/bazaarly-backend/pkg/config"
	"github.com/shopspring/decimal"
)

// ErrUnsupportedDestination signals that no shipping zone covers the country.
// Checkout treats it as a soft failure: shipping falls back to zero and the
// response carries a warning instead of aborting the purchase.
var ErrUnsupportedDestination = errors.New("unsupported shipping destination")

// Calculator resolves shipping and tax amounts for a single vendor order.
// All methods are pure; rates are fixed at construction time.
type Calculator struct {
	shippingRates     map[string]decimal.Decimal
	taxRates          map[string]decimal.Decimal
	freeShippingAbove decimal.Decimal
	defaultTaxPercent decimal.Decimal
}

// NewCalculator parses the configured zone tables.
func NewCalculator(cfg config.PricingConfig) (*Calculator, error) {
	shipping, err := parseRateTable(cfg.ShippingZones)
	if err != nil {
		return nil, fmt.Errorf("parsing shipping zones: %w", err)
	}
	tax, err := parseRateTable(cfg.TaxRates)
	if err != nil {
		return nil, fmt.Errorf("parsing tax rates: %w", err)
	}

	freeAbove := decimal.Zero
	if strings.TrimSpace(cfg.FreeShippingAbove) != "" {
		freeAbove, err = decimal.NewFromString(strings.TrimSpace(cfg.FreeShippingAbove))
		if err != nil {
			return nil, fmt.Errorf("parsing free shipping threshold: %w", err)
		}
	}

	return &Calculator{
		shippingRates:     shipping,
		taxRates:          tax,
		freeShippingAbove: freeAbove,
		defaultTaxPercent: decimal.NewFromFloat(cfg.DefaultTaxPercent),
	}, nil
}

// Shipping returns the flat rate for the destination country. Orders at or
// above the free-shipping threshold ship for free. Unknown countries return
// ErrUnsupportedDestination.
func (c *Calculator) Shipping(country string, orderSubtotal decimal.Decimal) (decimal.Decimal, error) {
	rate, ok := c.shippingRates[normalizeCountry(country)]
	if !ok {
		return decimal.Zero, ErrUnsupportedDestination
	}
	if c.freeShippingAbove.IsPositive() && orderSubtotal.GreaterThanOrEqual(c.freeShippingAbove) {
		return decimal.Zero, nil
	}
	return rate, nil
}

// Tax computes the destination tax on the undiscounted order subtotal,
// rounded to two decimal places.
func (c *Calculator) Tax(country string, taxableAmount decimal.Decimal) decimal.Decimal {
	percent, ok := c.taxRates[normalizeCountry(country)]
	if !ok {
		percent = c.defaultTaxPercent
	}
	if !percent.IsPositive() || !taxableAmount.IsPositive() {
		return decimal.Zero
	}
	return taxableAmount.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
}

func parseRateTable(raw string) (map[string]decimal.Decimal, error) {
	table := make(map[string]decimal.Decimal)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid rate entry %q", pair)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %q: %w", parts[0], err)
		}
		table[normalizeCountry(parts[0])] = rate
	}
	return table, nil
}

func normalizeCountry(country string) string {
	return strings.ToUpper(strings.TrimSpace(country))
}
