// internal/domain/pricing/pricing.go
package pricing

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// EffectivePrice returns the price after applying a percentage discount,
// rounded to 2 decimal places. A nil discount means no promotion is linked
// to the product, in which case the base price is returned unchanged.
//
// The function is total: it never rejects its input. A negative discount
// raises the price; range validation is the promotion's concern at the
// mutation boundary.
func EffectivePrice(basePrice decimal.Decimal, discountPercent *int) decimal.Decimal {
	if discountPercent == nil {
		return basePrice
	}

	discountAmount := basePrice.Mul(decimal.NewFromInt(int64(*discountPercent))).Div(oneHundred)
	return basePrice.Sub(discountAmount).Round(2)
}

// OnSale reports whether a product with the given promotion discount is
// currently on sale. Products without a promotion, or with a zero-percent
// promotion, are not on sale.
func OnSale(discountPercent *int) bool {
	return discountPercent != nil && *discountPercent > 0
}

// LineTotal returns the effective price multiplied by the line quantity.
func LineTotal(basePrice decimal.Decimal, discountPercent *int, quantity int) decimal.Decimal {
	return EffectivePrice(basePrice, discountPercent).Mul(decimal.NewFromInt(int64(quantity)))
}
