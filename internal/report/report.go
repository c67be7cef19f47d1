// Package report prints the suspect table and run summary.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/vertalert/internal/snap"
	"github.com/charmbracelet/lipgloss"
)

// Column headers.
const (
	HeaderBrush     = "Brush"
	HeaderDeviation = "Deviation"
)

// Write prints the suspects of res, ascending by deviation, followed by the
// rounded/ignored and suspect counts. fix selects the wording of the first
// summary line.
func Write(w io.Writer, res *snap.Result, fix bool) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true)
	warn := r.NewStyle().Foreground(lipgloss.Color("#F4D03F"))

	var b strings.Builder

	if len(res.Suspects) > 0 {
		width := idWidth(res.Suspects)
		fmt.Fprintf(&b, "%s%s  %s\n",
			header.Render(HeaderBrush), strings.Repeat(" ", width-len(HeaderBrush)),
			header.Render(HeaderDeviation))
		fmt.Fprintf(&b, "%s  %s\n", strings.Repeat("-", width), strings.Repeat("-", len(HeaderDeviation)))
		for _, s := range res.Suspects {
			fmt.Fprintf(&b, "%s  %s\n", pad(strconv.FormatInt(s.ID, 10), width), s.Deviation)
		}
		b.WriteString("\n")
	}

	action := "ignored"
	if fix {
		action = "rounded"
	}
	fmt.Fprintf(&b, "%d brush%s %s\n", res.Rounded, Suffix(res.Rounded), action)

	suspects := fmt.Sprintf("%d suspect brush%s", len(res.Suspects), Suffix(len(res.Suspects)))
	if len(res.Suspects) > 0 {
		suspects = warn.Render(suspects)
	}
	b.WriteString(suspects + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Suffix returns the plural suffix for "brush".
func Suffix(n int) string {
	if n == 1 {
		return ""
	}
	return "es"
}

func idWidth(suspects []snap.Suspect) int {
	width := len(HeaderBrush)
	for _, s := range suspects {
		if n := len(strconv.FormatInt(s.ID, 10)); n > width {
			width = n
		}
	}
	return width
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
