// Package grid snaps exact decimal coordinates onto uniform grids.
package grid

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidUnit is returned for grid units that are zero or negative.
var ErrInvalidUnit = errors.New("grid unit must be positive")

var two = decimal.NewFromInt(2)

// ValidateUnit checks that unit can be used as a grid spacing.
func ValidateUnit(unit decimal.Decimal) error {
	if unit.Sign() <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidUnit, unit)
	}
	return nil
}

// Nearest returns the multiple of unit closest to x.
// Ties go to the even multiple (banker's rounding), so 0.5 snaps to 0 and
// 1.5 snaps to 2 on a unit grid. Unit must have passed ValidateUnit.
func Nearest(x, unit decimal.Decimal) decimal.Decimal {
	// x = unit*q + r with q truncated toward zero and r carrying the sign of x.
	q, r := x.QuoRem(unit, 0)

	switch r.Abs().Mul(two).Cmp(unit) {
	case 1:
		q = q.Add(away(x))
	case 0:
		if isOdd(q) {
			q = q.Add(away(x))
		}
	}
	return q.Mul(unit)
}

// Deviation returns the absolute distance between x and its nearest grid
// multiple. Exact multiples always yield zero.
func Deviation(x, unit decimal.Decimal) decimal.Decimal {
	return Nearest(x, unit).Sub(x).Abs()
}

// Format renders d the way it should be written back into a map file:
// no trailing fractional zeros and no decimal point for whole numbers.
func Format(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	return d.String()
}

// away returns the unit step that moves a quotient away from zero.
func away(x decimal.Decimal) decimal.Decimal {
	if x.Sign() < 0 {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

func isOdd(q decimal.Decimal) bool {
	return q.Abs().BigInt().Bit(0) == 1
}
