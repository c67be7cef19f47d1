// Package snap classifies floating point brush coordinates and rewrites
// them onto the fine or coarse grid.
package snap

import (
	"fmt"

	"github.com/Faultbox/vertalert/pkg/grid"
	"github.com/shopspring/decimal"
)

// DefaultThresholdRatio is the default threshold as a fraction of the fine unit.
var DefaultThresholdRatio = decimal.RequireFromString("0.2")

// Options holds the parameters of one run. Build it with NewOptions or
// DefaultOptions so units are validated before any deviation is computed.
type Options struct {
	// Threshold separates fine snapping [0, Threshold) from coarse
	// snapping or suspects [Threshold, inf).
	Threshold decimal.Decimal
	FineUnit  decimal.Decimal
	// CoarseUnit is optional. When set every float brush gets rounded.
	CoarseUnit decimal.NullDecimal

	// Workers is the number of brushes evaluated concurrently (<=1 is serial).
	Workers int
	// Progress, when set, is called after each brush is evaluated.
	Progress func(done, total int)
}

// DefaultOptions returns a unit fine grid, a 0.2 threshold and no coarse grid.
func DefaultOptions() Options {
	fine := decimal.NewFromInt(1)
	return Options{
		Threshold: fine.Mul(DefaultThresholdRatio),
		FineUnit:  fine,
		Workers:   1,
	}
}

// NewOptions builds validated options. A null threshold defaults to 0.2 of
// the fine unit and a null coarse unit disables coarse snapping.
func NewOptions(fine decimal.Decimal, coarse decimal.NullDecimal, threshold decimal.NullDecimal) (Options, error) {
	opts := DefaultOptions()
	opts.FineUnit = fine
	opts.CoarseUnit = coarse
	opts.Threshold = fine.Mul(DefaultThresholdRatio)
	if threshold.Valid {
		opts.Threshold = threshold.Decimal
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate rejects non-positive grid units and negative thresholds.
func (o Options) Validate() error {
	if err := grid.ValidateUnit(o.FineUnit); err != nil {
		return fmt.Errorf("fine unit: %w", err)
	}
	if o.CoarseUnit.Valid {
		if err := grid.ValidateUnit(o.CoarseUnit.Decimal); err != nil {
			return fmt.Errorf("coarse unit: %w", err)
		}
	}
	if o.Threshold.IsNegative() {
		return fmt.Errorf("threshold must not be negative: %s", o.Threshold)
	}
	return nil
}
