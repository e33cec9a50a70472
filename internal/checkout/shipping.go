package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/omega-wallet/storefront-api/internal/cart"
	"github.com/omega-wallet/storefront-api/internal/pricing"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
)

// ShippingMethod selects the delivery option on the shipping page.
type ShippingMethod string

const (
	ShippingFree    ShippingMethod = "free"
	ShippingRegular ShippingMethod = "regular"
	ShippingExpress ShippingMethod = "express"
)

var shippingFees = map[ShippingMethod]decimal.Decimal{
	ShippingFree:    decimal.Zero,
	ShippingRegular: decimal.New(750, -2),
	ShippingExpress: decimal.New(1250, -2),
}

// ParseShippingMethod validates a method name coming off the wire.
func ParseShippingMethod(s string) (ShippingMethod, error) {
	method := ShippingMethod(s)
	if _, ok := shippingFees[method]; !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown shipping method").
			WithDetails(map[string]string{"method": s})
	}
	return method, nil
}

// Fee returns the flat fee for the method in EUR.
func (m ShippingMethod) Fee() decimal.Decimal {
	return shippingFees[m]
}

// Quote is the shipping-page total breakdown. Unlike the drawer totals, the
// grand total here includes the shipping fee.
type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	VATTotal    decimal.Decimal `json:"vatTotal"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
}

// QuoteTotals prices the cart for the chosen delivery option.
func QuoteTotals(lines []cart.LineItem, method ShippingMethod) Quote {
	totals := cart.NewStore(lines).Totals()
	fee := method.Fee()
	return Quote{
		Subtotal:    totals.Subtotal,
		VATTotal:    totals.VATTotal,
		ShippingFee: fee,
		GrandTotal:  pricing.Round2(totals.Subtotal.Add(fee)),
	}
}
