package vmf

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExtractBrushes returns every brush of doc in document order.
// A brush without a readable "id" field aborts extraction with
// ErrMalformedBrush, since skipping it would silently hide it from reports.
func ExtractBrushes(doc string) ([]Brush, error) {
	matches := brushPattern.FindAllStringIndex(doc, -1)
	brushes := make([]Brush, 0, len(matches))

	for _, m := range matches {
		text := doc[m[0]:m[1]]
		id, ok := parseID(text)
		if !ok {
			return nil, fmt.Errorf("%w: no id in solid at offset %d", ErrMalformedBrush, m[0])
		}
		brushes = append(brushes, Brush{
			ID:   id,
			Span: Span{Start: m[0], End: m[1]},
			Text: text,
		})
	}

	return brushes, nil
}

// Planes returns all plane definitions of the brush. Spans are absolute.
func (b Brush) Planes() []Plane {
	matches := planePattern.FindAllStringIndex(b.Text, -1)
	planes := make([]Plane, 0, len(matches))
	for _, m := range matches {
		planes = append(planes, Plane{
			Span: Span{Start: b.Span.Start + m[0], End: b.Span.Start + m[1]},
			Text: b.Text[m[0]:m[1]],
		})
	}
	return planes
}

// FloatPlanes returns the planes that contain a non-integer coordinate.
func (b Brush) FloatPlanes() []Plane {
	var planes []Plane
	for _, p := range b.Planes() {
		if p.IsFloat() {
			planes = append(planes, p)
		}
	}
	return planes
}

// Coordinates returns every numeric literal of the plane, left to right.
// Spans are absolute.
func (p Plane) Coordinates() ([]Coordinate, error) {
	matches := numberPattern.FindAllStringIndex(p.Text, -1)
	coords := make([]Coordinate, 0, len(matches))

	for _, m := range matches {
		text := p.Text[m[0]:m[1]]
		value, err := decimal.NewFromString(text)
		if err != nil {
			return nil, fmt.Errorf("parsing coordinate %q at offset %d: %w", text, p.Span.Start+m[0], err)
		}
		coords = append(coords, Coordinate{
			Span:  Span{Start: p.Span.Start + m[0], End: p.Span.Start + m[1]},
			Text:  text,
			Value: value,
		})
	}

	return coords, nil
}
