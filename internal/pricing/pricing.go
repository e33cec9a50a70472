// Package pricing holds the pure money math shared by the cart, the catalog
// and the checkout bridge. All VAT figures derive from a VAT-inclusive gross
// amount; nothing here ever adds VAT on top of a gross price twice.
package pricing

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Amount coerces a loosely-typed numeric value into a decimal. The commerce
// platform sends prices as numbers or strings depending on the endpoint, and
// occasionally omits them; anything unusable becomes zero instead of an
// error. That matches the storefront's historical behavior and must not
// change (malformed upstream price data renders as free rather than failing).
func Amount(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(val)
	case float32:
		return Amount(float64(val))
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case json.Number:
		return parse(val.String())
	case string:
		return parse(val)
	default:
		return decimal.Zero
	}
}

func parse(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Round2 rounds to two decimal places, half away from zero. It is applied
// once at the end of a derivation, never per intermediate term.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PriceFields is the pricing-relevant slice of a product's attributes.
// VATAmount is nil when the platform did not send an explicit amount, in
// which case it derives from Price and VATRate.
type PriceFields struct {
	Price      decimal.Decimal
	VATRate    decimal.Decimal
	VATAmount  *decimal.Decimal
	Discount   decimal.Decimal
	FinalPrice decimal.Decimal
}

// UnitFinalPrice computes the gross unit price for a product. An explicit
// positive final price wins; otherwise the price is grossed up with VAT and
// reduced by the discount, floored at zero.
func UnitFinalPrice(f PriceFields) decimal.Decimal {
	if f.FinalPrice.IsPositive() {
		return Round2(f.FinalPrice)
	}

	vat := f.Price.Mul(f.VATRate).Div(hundred)
	if f.VATAmount != nil {
		vat = *f.VATAmount
	}

	final := f.Price.Add(vat).Sub(f.Discount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	return Round2(final)
}

// VATBreakdown splits a gross amount into net and VAT for the given rate
// percentage. The same split applies to flat package prices and computed
// product prices; only the gross input differs.
func VATBreakdown(gross, ratePercent decimal.Decimal) (net, vat decimal.Decimal) {
	divisor := decimal.NewFromInt(1).Add(ratePercent.Div(hundred))
	if divisor.IsZero() {
		return gross, decimal.Zero
	}
	net = gross.Div(divisor)
	vat = gross.Sub(net)
	return net, vat
}

// LineVAT returns the VAT contained in quantity units at the given gross
// unit price.
func LineVAT(grossUnit, ratePercent decimal.Decimal, quantity int) decimal.Decimal {
	_, vat := VATBreakdown(grossUnit, ratePercent)
	return vat.Mul(decimal.NewFromInt(int64(quantity)))
}
