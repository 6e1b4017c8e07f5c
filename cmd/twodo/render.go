package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/aretw0/twodo/pkg/core"
)

const barWidth = 30

var (
	doneStyle    = color.New(color.FgGreen)
	expiredStyle = color.New(color.FgRed)
	dimStyle     = color.New(color.Faint)
)

// renderEntries prints one line per entry, numbered by full-list position.
func renderEntries(w io.Writer, entries []core.Entry) {
	if len(entries) == 0 {
		dimStyle.Fprintln(w, "No notes.")
		return
	}

	for _, e := range entries {
		mark := "[ ]"
		if e.Note.Completed {
			mark = "[x]"
		}

		line := fmt.Sprintf("%3d. %s %s  (due %s)", e.Index+1, mark, e.Note.Title, e.Note.Deadline)
		switch {
		case e.Expired:
			expiredStyle.Fprintln(w, line+" expired")
		case e.Note.Completed:
			doneStyle.Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}

		if e.Note.Content != "" {
			dimStyle.Fprintf(w, "       %s\n", e.Note.Content)
		}
	}
}

// renderChart draws a two-row horizontal bar chart.
// scale is the value of a full bar; unit is appended to each value.
func renderChart(w io.Writer, title string, c core.Chart, scale float64, unit string) {
	fmt.Fprintln(w, title)

	labelWidth := max(len(c.Labels[0]), len(c.Labels[1]))
	styles := [2]*color.Color{doneStyle, expiredStyle}

	for i := range c.Labels {
		filled := 0
		if scale > 0 {
			filled = int(math.Round(c.Values[i] / scale * barWidth))
		}
		filled = min(max(filled, 0), barWidth)

		fmt.Fprintf(w, "  %-*s ", labelWidth, c.Labels[i])
		styles[i].Fprint(w, strings.Repeat("#", filled))
		fmt.Fprintf(w, "%s %s%s\n", strings.Repeat(".", barWidth-filled), formatValue(c.Values[i]), unit)
	}
}

// renderStats prints both charts of a view.
func renderStats(w io.Writer, v core.View) {
	total := float64(v.Completed + v.Uncompleted)
	renderChart(w, "Notes", v.Counts, total, "")
	fmt.Fprintln(w)
	renderChart(w, "Share", v.Percentages, 100, "%")
	if v.Empty {
		dimStyle.Fprintln(w, "(no notes match)")
	}
}

func formatValue(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%.1f", f)
}
