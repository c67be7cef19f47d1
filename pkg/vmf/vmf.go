// Package vmf locates brush geometry inside Valve Map Format (.vmf) text.
//
// The document is never parsed into a tree. Brushes, planes and numeric
// literals are found by pattern matching and reported as spans into the
// original text, so callers can rebuild the file with only the literals they
// choose to replace.
package vmf

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// VMF errors.
var (
	ErrInputNotFound    = errors.New("input not found")
	ErrInvalidExtension = errors.New("input must be a .vmf file")
	ErrMalformedBrush   = errors.New("malformed brush")
)

var (
	// A brush is a "solid" block one tab deep, i.e. directly inside world or
	// an entity. Solids inside a hidden visgroup sit one level deeper and are
	// deliberately not matched.
	brushPattern  = regexp.MustCompile(`(?s)solid\r?\n\t\{.*?\r?\n\t\}`)
	idPattern     = regexp.MustCompile(`"id"\s"(\d+)"`)
	planePattern  = regexp.MustCompile(`(?s)"plane"\s".*?"`)
	numberPattern = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)
)

// Span is a half-open byte range [Start, End) into a document.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Brush is one solid block of the document.
type Brush struct {
	ID   int64
	Span Span
	Text string
}

// Plane is a single "plane" key/value of a brush side.
type Plane struct {
	Span Span
	Text string
}

// Coordinate is a numeric literal inside a plane.
type Coordinate struct {
	Span  Span
	Text  string
	Value decimal.Decimal
}

// IsFloat reports whether the literal was written as a non-integer.
// Hammer only emits a decimal point when a value is not integral.
func (c Coordinate) IsFloat() bool {
	return strings.ContainsAny(c.Text, ".eE")
}

// IsFloat reports whether the plane holds at least one non-integer value.
func (p Plane) IsFloat() bool {
	return strings.Contains(p.Text, ".")
}

func parseID(text string) (int64, bool) {
	m := idPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
