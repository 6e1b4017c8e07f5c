package core

import (
	"fmt"
	"strings"
	"time"
)

// Category selects which part of the filtered list is visible.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryCompleted   Category = "completed"
	CategoryUncompleted Category = "uncompleted"
)

// ParseCategory maps user input to a Category. Empty input means CategoryAll.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "", CategoryAll:
		return CategoryAll, nil
	case CategoryCompleted, CategoryUncompleted:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q (want all, completed or uncompleted)", s)
	}
}

// Query holds the UI inputs a view is computed from.
type Query struct {
	Filter   string
	Category Category
}

// Entry is a note as it appears in a view.
// Index addresses the note in the full list, not in the view.
type Entry struct {
	Index   int  `json:"index"`
	Note    Note `json:"note"`
	Expired bool `json:"expired"`
}

// Chart labels, in dataset order.
const (
	LabelCompleted   = "Completed"
	LabelUncompleted = "Not completed"
)

// Chart is a two-slice dataset: completed first, uncompleted second.
type Chart struct {
	Labels [2]string  `json:"labels"`
	Values [2]float64 `json:"values"`
}

// View is everything derived from the note list for one Query.
type View struct {
	Entries     []Entry `json:"entries"`
	Completed   int     `json:"completed"`
	Uncompleted int     `json:"uncompleted"`
	Counts      Chart   `json:"counts"`
	Percentages Chart   `json:"percentages"`
	// Empty is set when no note is visible; Percentages is then all zero.
	Empty bool `json:"empty"`
}

// FilterByTitle keeps the notes whose title contains text, ignoring case.
func FilterByTitle(notes []Note, text string) []Entry {
	needle := strings.ToLower(text)
	out := make([]Entry, 0, len(notes))
	for i, n := range notes {
		if needle != "" && !strings.Contains(strings.ToLower(n.Title), needle) {
			continue
		}
		out = append(out, Entry{Index: i, Note: n})
	}
	return out
}

// SplitByCategory narrows entries down to a Category.
func SplitByCategory(entries []Entry, c Category) []Entry {
	if c == "" || c == CategoryAll {
		return entries
	}
	want := c == CategoryCompleted
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Note.Completed == want {
			out = append(out, e)
		}
	}
	return out
}

// Tally counts completed and uncompleted entries.
func Tally(entries []Entry) (completed, uncompleted int) {
	for _, e := range entries {
		if e.Note.Completed {
			completed++
		} else {
			uncompleted++
		}
	}
	return completed, uncompleted
}

// CountChart is the absolute-count dataset.
func CountChart(completed, uncompleted int) Chart {
	return Chart{
		Labels: [2]string{LabelCompleted, LabelUncompleted},
		Values: [2]float64{float64(completed), float64(uncompleted)},
	}
}

// PercentChart is the percentage dataset. Both values are zero when there is nothing to count.
func PercentChart(completed, uncompleted int) Chart {
	c := Chart{Labels: [2]string{LabelCompleted, LabelUncompleted}}
	total := completed + uncompleted
	if total == 0 {
		return c
	}
	pct := float64(completed) / float64(total) * 100
	c.Values = [2]float64{pct, 100 - pct}
	return c
}

// BuildView derives a View from notes. now and loc drive the expiry flags.
func BuildView(notes []Note, q Query, now time.Time, loc *time.Location) View {
	entries := SplitByCategory(FilterByTitle(notes, q.Filter), q.Category)
	for i := range entries {
		entries[i].Expired = entries[i].Note.IsExpired(now, loc)
	}

	completed, uncompleted := Tally(entries)
	return View{
		Entries:     entries,
		Completed:   completed,
		Uncompleted: uncompleted,
		Counts:      CountChart(completed, uncompleted),
		Percentages: PercentChart(completed, uncompleted),
		Empty:       len(entries) == 0,
	}
}
