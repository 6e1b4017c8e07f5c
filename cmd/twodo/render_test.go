package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/twodo/pkg/core"
)

func init() {
	color.NoColor = true
}

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func sampleNotes() []core.Note {
	return []core.Note{
		{Title: "Buy milk", Content: "2 liters", Deadline: "2024-03-12"},
		{Title: "Pay rent", Deadline: "2024-03-01"},
		{Title: "Call mom", Completed: true, Deadline: "2024-03-11"},
	}
}

func TestRenderEntries(t *testing.T) {
	var buf bytes.Buffer
	view := core.BuildView(sampleNotes(), core.Query{}, now, time.UTC)

	renderEntries(&buf, view.Entries)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "  1. [ ] Buy milk  (due 2024-03-12)", lines[0])
	assert.Equal(t, "       2 liters", lines[1])
	assert.Equal(t, "  2. [ ] Pay rent  (due 2024-03-01) expired", lines[2])
	assert.Equal(t, "  3. [x] Call mom  (due 2024-03-11)", lines[3])
}

func TestRenderEntries_KeepsFullListPositions(t *testing.T) {
	var buf bytes.Buffer
	view := core.BuildView(sampleNotes(), core.Query{Filter: "MOM"}, now, time.UTC)

	renderEntries(&buf, view.Entries)

	assert.Equal(t, "  3. [x] Call mom  (due 2024-03-11)\n", buf.String())
}

func TestRenderEntries_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderEntries(&buf, nil)
	assert.Equal(t, "No notes.\n", buf.String())
}

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	view := core.BuildView(sampleNotes(), core.Query{}, now, time.UTC)

	renderStats(&buf, view)

	out := buf.String()
	assert.Contains(t, out, "Notes\n")
	assert.Contains(t, out, "Share\n")
	assert.Contains(t, out, "  Completed     "+strings.Repeat("#", 10)+strings.Repeat(".", 20)+" 1\n")
	assert.Contains(t, out, "  Not completed "+strings.Repeat("#", 20)+strings.Repeat(".", 10)+" 2\n")
	assert.Contains(t, out, " 33.3%\n")
	assert.Contains(t, out, " 66.7%\n")
	assert.NotContains(t, out, "no notes match")
}

func TestRenderStats_Empty(t *testing.T) {
	var buf bytes.Buffer
	view := core.BuildView(nil, core.Query{}, now, time.UTC)

	renderStats(&buf, view)

	out := buf.String()
	assert.Contains(t, out, strings.Repeat(".", barWidth)+" 0%\n")
	assert.Contains(t, out, "(no notes match)")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "50", formatValue(50))
	assert.Equal(t, "33.3", formatValue(100.0/3))
}
