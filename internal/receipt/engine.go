package receipt

import (
	"errors"
	"math"
)

var (
	// ErrTaxOutOfRange is returned when the tax percentage lies outside [0, 100].
	ErrTaxOutOfRange = errors.New("tax percentage must be between 0 and 100")
	// ErrNegativeDiscount is returned when the discount value is negative.
	ErrNegativeDiscount = errors.New("discount value cannot be negative")
	// ErrDiscountPercentageOutOfRange is returned when a percentage discount exceeds 100.
	ErrDiscountPercentageOutOfRange = errors.New("discount percentage cannot exceed 100%")
)

// DiscountType selects how the discount value is interpreted.
type DiscountType string

const (
	// DiscountFlat subtracts an absolute currency amount, clamped to the subtotal.
	DiscountFlat DiscountType = "flat"
	// DiscountPercentage subtracts a percentage of the subtotal (0–100 scale).
	DiscountPercentage DiscountType = "percentage"
)

// Item is a single priced line on a receipt. Quantity may be fractional.
// Negative values are tolerated here to allow refund/adjustment lines;
// range policy lives at the persistence boundary, not in the calculator.
type Item struct {
	Price float64 `json:"price"`
	Qty   float64 `json:"qty"`
}

// Options configures tax and discount for a calculation. The zero value
// means no tax and no discount.
type Options struct {
	TaxPercent    float64
	DiscountType  DiscountType
	DiscountValue float64
}

// Calculation is the rounded financial breakdown of a receipt. Every field
// is rounded to 2 decimals independently so the invariant
// Total == (Subtotal - DiscountAmount) + TaxAmount holds exactly on the
// rounded representation.
type Calculation struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	Total          float64 `json:"total"`
}

// Compute calculates receipt totals in a fixed order: subtotal, then
// discount on the subtotal, then tax on the discounted amount.
//
// The calculator is pure and allocation-light so callers may run it on
// every form keystroke. Tax and discount options are validated strictly;
// malformed item numerics (NaN, ±Inf) are coerced to zero instead so a
// partially filled form still produces a preview.
func Compute(items []Item, opts Options) (Calculation, error) {
	taxPercent := finiteOrZero(opts.TaxPercent)
	discountValue := finiteOrZero(opts.DiscountValue)
	discountType := opts.DiscountType
	if discountType == "" {
		discountType = DiscountFlat
	}

	if taxPercent < 0 || taxPercent > 100 {
		return Calculation{}, ErrTaxOutOfRange
	}
	if discountValue < 0 {
		return Calculation{}, ErrNegativeDiscount
	}
	if discountType == DiscountPercentage && discountValue > 100 {
		return Calculation{}, ErrDiscountPercentageOutOfRange
	}

	var sum float64
	for _, it := range items {
		sum += finiteOrZero(it.Price) * finiteOrZero(it.Qty)
	}
	subtotal := Round2(sum)

	var discount float64
	switch discountType {
	case DiscountPercentage:
		discount = subtotal * discountValue / 100
	default:
		discount = math.Min(discountValue, subtotal)
	}
	discount = Round2(discount)

	// Taxable amount is derived from the two already-rounded fields and is
	// deliberately not rounded again.
	taxable := subtotal - discount
	tax := Round2(taxable * taxPercent / 100)
	total := Round2(taxable + tax)

	return Calculation{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          total,
	}, nil
}

// Round2 rounds to 2 decimal places, half away from zero. Scaling to an
// integer before rounding avoids the x.005 artifacts of naive float
// formatting.
func Round2(value float64) float64 {
	scaled := value * 100
	if scaled < 0 {
		return math.Ceil(scaled-0.5) / 100
	}
	return math.Floor(scaled+0.5) / 100
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
