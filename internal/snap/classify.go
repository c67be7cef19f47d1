package snap

import (
	"strings"

	"github.com/Faultbox/vertalert/pkg/grid"
	"github.com/Faultbox/vertalert/pkg/vmf"
	"github.com/shopspring/decimal"
)

// Edit replaces the literal at Span (absolute offsets) with New.
type Edit struct {
	Span vmf.Span
	Old  string
	New  string
}

// PlaneRewrite is the outcome of classifying one plane.
type PlaneRewrite struct {
	// Text is the plane with every snappable literal replaced.
	Text string
	// Edits are the replacements that change the text, left to right.
	Edits []Edit
	// MaxDeviation is the largest fine grid deviation of any float literal.
	MaxDeviation decimal.Decimal
	// Suspect is set when a literal reached the threshold and no coarse
	// unit was available to snap it.
	Suspect bool
}

// RewritePlane classifies every float literal of p against the fine grid.
// Literals below the threshold snap to the fine unit. The rest snap to the
// coarse unit when one is configured and are left alone otherwise. Integer
// literals are never touched.
func RewritePlane(p vmf.Plane, opts Options) (PlaneRewrite, error) {
	coords, err := p.Coordinates()
	if err != nil {
		return PlaneRewrite{}, err
	}

	res := PlaneRewrite{MaxDeviation: decimal.Zero}
	for _, c := range coords {
		if !c.IsFloat() {
			continue
		}

		dev := grid.Deviation(c.Value, opts.FineUnit)
		if dev.GreaterThan(res.MaxDeviation) {
			res.MaxDeviation = dev
		}

		unit, ok := opts.unitFor(dev)
		if !ok {
			res.Suspect = true
			continue
		}

		text := grid.Format(grid.Nearest(c.Value, unit))
		if text == c.Text {
			continue
		}
		res.Edits = append(res.Edits, Edit{Span: c.Span, Old: c.Text, New: text})
	}

	res.Text = Apply(p.Text, p.Span.Start, res.Edits)
	return res, nil
}

// unitFor picks the grid a coordinate with the given fine deviation snaps to.
// The threshold boundary is half-open: a deviation equal to it is not fine.
func (o Options) unitFor(dev decimal.Decimal) (decimal.Decimal, bool) {
	if dev.LessThan(o.Threshold) {
		return o.FineUnit, true
	}
	if o.CoarseUnit.Valid {
		return o.CoarseUnit.Decimal, true
	}
	return decimal.Decimal{}, false
}

// Apply rebuilds text with edits applied. base is the absolute offset of
// text[0]; edits must be sorted, non-overlapping and inside text. Every byte
// outside the edited spans is copied unchanged.
func Apply(text string, base int, edits []Edit) string {
	if len(edits) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, e := range edits {
		b.WriteString(text[last : e.Span.Start-base])
		b.WriteString(e.New)
		last = e.Span.End - base
	}
	b.WriteString(text[last:])
	return b.String()
}
