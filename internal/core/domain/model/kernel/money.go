package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"ordering/internal/pkg/errs"
)

// ErrNegativeResult is the sentinel behind NegativeResultError.
var ErrNegativeResult = errors.New("monetary result is negative")

// NegativeResultError is returned when an operation would produce a negative amount.
// It signals a pricing bug (a discount larger than the subtotal, a negative factor)
// rather than bad user input.
type NegativeResultError struct {
	Operation string
	Left      int64
	Right     string
}

func (e *NegativeResultError) Error() string {
	return fmt.Sprintf("%s: %s(%d, %s)", ErrNegativeResult, e.Operation, e.Left, e.Right)
}

func (e *NegativeResultError) Unwrap() error {
	return ErrNegativeResult
}

func newNegativeResultError(op string, left int64, right any) *NegativeResultError {
	return &NegativeResultError{Operation: op, Left: left, Right: fmt.Sprint(right)}
}

// Money is a non-negative amount in minor currency units (cents, sen).
// The zero value is a valid zero amount. Every operation returns a new value.
//
// Example:
//
//	price, _ := kernel.NewMoney(340)
//	line, _ := price.Multiply(2)              // 680
//	tax, _ := line.PercentageOf(decimal.NewFromInt(5)) // 34
type Money struct {
	minor int64
}

// NewMoney builds an amount from minor units.
//
// Returns:
//   - Money: the amount
//   - error: ValueIsOutOfRange for negative input
func NewMoney(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", minor, 0, int64(math.MaxInt64))
	}
	return Money{minor: minor}, nil
}

// MustMoney is NewMoney for literals known to be valid.
func MustMoney(minor int64) Money {
	m, err := NewMoney(minor)
	if err != nil {
		panic(err)
	}
	return m
}

func ZeroMoney() Money {
	return Money{}
}

func (m Money) Minor() int64 {
	return m.minor
}

func (m Money) IsZero() bool {
	return m.minor == 0
}

func (m Money) IsEqual(other Money) bool {
	return m.minor == other.minor
}

func (m Money) GreaterThan(other Money) bool {
	return m.minor > other.minor
}

// Add sums two amounts. Overflow is reported as an out-of-range error.
func (m Money) Add(other Money) (Money, error) {
	if other.minor > math.MaxInt64-m.minor {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", "overflow", 0, int64(math.MaxInt64))
	}
	return Money{minor: m.minor + other.minor}, nil
}

// Subtract returns m - other, or NegativeResultError when other is larger.
func (m Money) Subtract(other Money) (Money, error) {
	if other.minor > m.minor {
		return Money{}, newNegativeResultError("subtract", m.minor, other.minor)
	}
	return Money{minor: m.minor - other.minor}, nil
}

// Multiply scales the amount by a whole factor such as a line quantity.
// A negative factor yields NegativeResultError.
func (m Money) Multiply(factor int) (Money, error) {
	if factor < 0 {
		return Money{}, newNegativeResultError("multiply", m.minor, factor)
	}
	if factor != 0 && m.minor > math.MaxInt64/int64(factor) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", "overflow", 0, int64(math.MaxInt64))
	}
	return Money{minor: m.minor * int64(factor)}, nil
}

// PercentageOf returns rate percent of the amount, rounded half-up to the
// nearest minor unit. The rate is a percentage: 5 means 5%, 8.25 means 8.25%.
// The computation is decimal-exact, so identical inputs always give identical results.
//
// Example:
//
//	subtotal := kernel.MustMoney(860)
//	tax, _ := subtotal.PercentageOf(decimal.NewFromInt(5)) // 43
func (m Money) PercentageOf(rate decimal.Decimal) (Money, error) {
	if rate.IsNegative() {
		return Money{}, newNegativeResultError("percentage", m.minor, rate.String())
	}
	// Round(0) rounds half away from zero, which is half-up for non-negative values.
	result := decimal.NewFromInt(m.minor).Mul(rate).Shift(-2).Round(0)
	if result.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", result.String(), 0, int64(math.MaxInt64))
	}
	return Money{minor: result.IntPart()}, nil
}

// Sum adds amounts left to right.
func Sum(amounts ...Money) (Money, error) {
	total := ZeroMoney()
	for _, a := range amounts {
		var err error
		if total, err = total.Add(a); err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

// String renders the amount as major.minor with two decimals, e.g. "9.43".
func (m Money) String() string {
	return decimal.New(m.minor, -2).StringFixed(2)
}
