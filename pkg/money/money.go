// Package money provides the monetary value object used by the ledger.
//
// It is a value object representing an exact decimal amount.
// Invariants:
//   - Amount is always stored in the smallest unit (cents).
//   - Amounts accept at most two decimal places; binary floating-point
//     never participates in arithmetic, only at the API boundary.
//   - Conversion to/from float64 round-trips losslessly for values with
//     at most two fractional digits.
package money

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidAmount is returned when an amount is NaN, infinite, or has
	// more than two decimal places.
	ErrInvalidAmount = errors.New("invalid amount: must be a finite number with at most 2 decimal places")

	// ErrAmountExceedsMaxSafeInt is returned when an operation would
	// overflow the underlying integer representation.
	ErrAmountExceedsMaxSafeInt = errors.New("amount exceeds maximum safe integer value")
)

// Decimals is the number of fractional digits carried by every amount.
const Decimals = 2

const centsPerUnit = 100

// Money represents an exact monetary value stored in cents.
// The zero value is zero money and is ready to use.
type Money struct {
	cents int64
}

// New creates a Money value from a main-unit amount (e.g. 100.50).
// The amount must be finite and must not carry more than two decimal
// places; anything else returns ErrInvalidAmount.
func New(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, ErrInvalidAmount
	}
	scaled := amount * centsPerUnit
	if scaled >= math.MaxInt64 || scaled <= math.MinInt64 {
		return Money{}, ErrAmountExceedsMaxSafeInt
	}
	cents := math.Round(scaled)
	// Reject sub-cent precision. The tolerance absorbs binary representation
	// noise of 2-decimal inputs (e.g. 0.29*100 == 28.999999...). It is
	// anchored to the spacing of float64 values at this magnitude, so it
	// stays far below half a cent at any amount the type can hold.
	ulp := math.Nextafter(math.Abs(scaled), math.Inf(1)) - math.Abs(scaled)
	if math.Abs(scaled-cents) > math.Max(1e-6, 4*ulp) {
		return Money{}, ErrInvalidAmount
	}
	return Money{cents: int64(cents)}, nil
}

// Must is like New but panics on error. Intended for constants and tests.
func Must(amount float64) Money {
	m, err := New(amount)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%v): %v", amount, err))
	}
	return m
}

// FromCents creates a Money value from a raw smallest-unit amount.
// Used for store hydration; it bypasses decimal validation because cents
// are exact by construction.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// Cents returns the amount in the smallest unit.
func (m Money) Cents() int64 { return m.cents }

// Float64 returns the amount in main units for display and API responses.
// Lossless for any value New or FromCents can produce within the float64
// integer-safe range.
func (m Money) Float64() float64 {
	return float64(m.cents) / centsPerUnit
}

// Add returns m + other, failing on int64 overflow.
func (m Money) Add(other Money) (Money, error) {
	sum := m.cents + other.cents
	if (other.cents > 0 && sum < m.cents) || (other.cents < 0 && sum > m.cents) {
		return Money{}, ErrAmountExceedsMaxSafeInt
	}
	return Money{cents: sum}, nil
}

// Sub returns m - other, failing on int64 overflow.
func (m Money) Sub(other Money) (Money, error) {
	diff := m.cents - other.cents
	if (other.cents < 0 && diff < m.cents) || (other.cents > 0 && diff > m.cents) {
		return Money{}, ErrAmountExceedsMaxSafeInt
	}
	return Money{cents: diff}, nil
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool { return m.cents > 0 }

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool { return m.cents < 0 }

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool { return m.cents < other.cents }

// Equals reports whether both values represent the same amount.
func (m Money) Equals(other Money) bool { return m.cents == other.cents }

// String formats the amount with two decimal places, e.g. "150.00".
func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/centsPerUnit, c%centsPerUnit)
}
