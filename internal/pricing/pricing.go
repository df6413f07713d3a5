// Package pricing holds the money rules shared by sales and billing.
//
// Amounts are shopspring decimals end to end. Persisted amounts carry two
// fractional digits and are rounded half-up (half away from zero for the
// non-negative amounts this service handles) before they are stored.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// CentPlaces is the number of fractional digits kept on stored amounts.
const CentPlaces = 2

// MaxAmount is the exclusive upper bound of a stored amount (NUMERIC(12,2)).
var MaxAmount = decimal.New(1, 10)

var (
	ErrNegativePrice       = errors.New("price must not be negative")
	ErrAmountTooLarge      = errors.New("amount is too large")
	ErrInvalidMultiplier   = errors.New("price multiplier must be positive")
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
)

// RoundCents rounds an amount half-up to cents.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(CentPlaces)
}

// LineTotal computes unit × multiplier × quantity, rounded to cents.
// 49.99 × 1.5 × 1 = 74.985 → 74.99.
func LineTotal(unitPrice, multiplier decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if unitPrice.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNegativePrice, unitPrice)
	}
	if !multiplier.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidMultiplier, multiplier)
	}
	if quantity <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrNonPositiveQuantity, quantity)
	}
	total := RoundCents(unitPrice.Mul(multiplier).Mul(decimal.NewFromInt(int64(quantity))))
	if err := CheckAmount(total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// CheckAmount rejects amounts that cannot be stored: negatives and
// anything at or above MaxAmount once rounded to cents.
func CheckAmount(d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativePrice, d)
	}
	if RoundCents(d).GreaterThanOrEqual(MaxAmount) {
		return fmt.Errorf("%w: %s (limit %s)", ErrAmountTooLarge, d, MaxAmount)
	}
	return nil
}

// ParsePrice parses a user supplied price ("49.99"), rejects amounts
// CheckAmount refuses and rounds the result to cents.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", s)
	}
	if err := CheckAmount(d); err != nil {
		return decimal.Zero, err
	}
	return RoundCents(d), nil
}

// Sum adds amounts exactly.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
