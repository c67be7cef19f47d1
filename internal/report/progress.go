package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-isatty"
)

// Progress draws a single-line progress bar, redrawn in place.
type Progress struct {
	w       io.Writer
	bar     progress.Model
	last    int
	started bool
}

// NewProgress returns a progress bar writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{
		w:    w,
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		last: -1,
	}
}

// IsTerminal reports whether f is attached to a terminal. The bar is only
// useful there; redirected output should stay clean.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Update redraws the bar for done out of total brushes. It only redraws when
// the whole percentage changes.
func (p *Progress) Update(done, total int) {
	if total <= 0 {
		return
	}
	percent := done * 100 / total
	if percent == p.last {
		return
	}
	p.last = percent
	p.started = true
	fmt.Fprintf(p.w, "\r%s", p.bar.ViewAs(float64(done)/float64(total)))
}

// Finish ends the progress line.
func (p *Progress) Finish() {
	if p.started {
		fmt.Fprintln(p.w)
	}
}
