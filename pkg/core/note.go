// Package core holds the note model, the note store service and the
// derived views computed from it.
package core

import (
	"time"
)

// DateLayout is the calendar-date format used for deadlines.
const DateLayout = "2006-01-02"

// Note is the central entity of the domain.
// It is agnostic to storage format; the JSON keys match the persisted slot layout.
type Note struct {
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Completed bool      `json:"completed" yaml:"completed"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Deadline  string    `json:"deadline" yaml:"deadline"`
}

// ParseDeadline converts a deadline string into the instant it expires at.
// Date-only values resolve to midnight in loc (UTC when nil).
// RFC 3339 timestamps are accepted as well.
func ParseDeadline(deadline string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(DateLayout, deadline, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, deadline)
}

// IsExpired reports whether now is strictly past the note's deadline.
// A deadline that does not parse never expires.
func (n Note) IsExpired(now time.Time, loc *time.Location) bool {
	due, err := ParseDeadline(n.Deadline, loc)
	if err != nil {
		return false
	}
	return now.After(due)
}
