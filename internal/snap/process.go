package snap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Faultbox/vertalert/pkg/vmf"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Suspect is a brush left untouched because it strays too far from the grid.
type Suspect struct {
	ID        int64
	Deviation decimal.Decimal
	Span      vmf.Span
}

// Result is the outcome of processing one document.
type Result struct {
	// Brushes is the number of brushes found in the document.
	Brushes int
	// Rounded is the number of brushes whose text was rewritten.
	Rounded int
	// Suspects are sorted ascending by deviation, then by brush id.
	Suspects []Suspect
	// Output is the document with all rounded brushes rewritten.
	Output string
}

// Changed reports whether Output differs from the input document.
func (r *Result) Changed() bool {
	return r.Rounded > 0
}

// brushOutcome is the independent per-brush decision later folded into the
// result.
type brushOutcome struct {
	float        bool
	maxDeviation decimal.Decimal
	edits        []Edit
}

// Process extracts every brush of doc, scores its float coordinates and
// either rounds it or reports it as a suspect.
//
// A brush is rounded when its maximum fine deviation is below the threshold,
// or whenever a coarse unit is configured. Otherwise it is a suspect and its
// bytes are copied unchanged. Brushes without float coordinates, and brushes
// whose floats already sit on the grid text-wise, count as neither.
func Process(doc string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	brushes, err := vmf.ExtractBrushes(doc)
	if err != nil {
		return nil, err
	}

	outcomes, err := evaluateAll(brushes, opts)
	if err != nil {
		return nil, err
	}

	return fold(doc, brushes, outcomes, opts), nil
}

func evaluate(b vmf.Brush, opts Options) (brushOutcome, error) {
	out := brushOutcome{maxDeviation: decimal.Zero}
	for _, p := range b.FloatPlanes() {
		rw, err := RewritePlane(p, opts)
		if err != nil {
			return brushOutcome{}, err
		}
		out.float = true
		if rw.MaxDeviation.GreaterThan(out.maxDeviation) {
			out.maxDeviation = rw.MaxDeviation
		}
		out.edits = append(out.edits, rw.Edits...)
	}
	return out, nil
}

// evaluateAll scores brushes on up to opts.Workers goroutines. Outcomes are
// stored by index so the fold stays in document order.
func evaluateAll(brushes []vmf.Brush, opts Options) ([]brushOutcome, error) {
	outcomes := make([]brushOutcome, len(brushes))

	var (
		mu   sync.Mutex
		done int
	)
	progress := func() {
		if opts.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		done++
		opts.Progress(done, len(brushes))
	}

	var g errgroup.Group
	g.SetLimit(max(opts.Workers, 1))
	for i, b := range brushes {
		g.Go(func() error {
			out, err := evaluate(b, opts)
			if err != nil {
				return fmt.Errorf("brush %d: %w", b.ID, err)
			}
			outcomes[i] = out
			progress()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

func fold(doc string, brushes []vmf.Brush, outcomes []brushOutcome, opts Options) *Result {
	res := &Result{Brushes: len(brushes)}

	var edits []Edit
	for i, out := range outcomes {
		if !out.float {
			continue
		}

		if out.maxDeviation.LessThan(opts.Threshold) || opts.CoarseUnit.Valid {
			if len(out.edits) > 0 {
				res.Rounded++
				edits = append(edits, out.edits...)
			}
			continue
		}

		res.Suspects = append(res.Suspects, Suspect{
			ID:        brushes[i].ID,
			Deviation: out.maxDeviation,
			Span:      brushes[i].Span,
		})
	}

	sort.SliceStable(res.Suspects, func(i, j int) bool {
		a, b := res.Suspects[i], res.Suspects[j]
		if c := a.Deviation.Cmp(b.Deviation); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})

	res.Output = Apply(doc, 0, edits)
	return res
}
