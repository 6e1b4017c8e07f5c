package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// noEdit is the edit index when no note is being edited.
const noEdit = -1

// Service owns the note list for a session and mirrors it to a NoteSlot
// after every change.
type Service struct {
	mu        sync.RWMutex
	slot      NoteSlot
	notes     []Note
	editIndex int

	now    func() time.Time
	loc    *time.Location
	logger *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the time zone date-only deadlines are interpreted in.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithServiceLogger sets the logger for the service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new Service with an empty list. Call Load to read the slot.
func NewService(slot NoteSlot, opts ...ServiceOption) *Service {
	s := &Service{
		slot:      slot,
		editIndex: noEdit,
		now:       time.Now,
		loc:       time.UTC,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the slot and replaces the in-memory list with it.
// A missing slot yields an empty list.
func (s *Service) Load(ctx context.Context) error {
	notes, found, err := s.slot.Load(ctx)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !found {
		notes = nil
	}
	s.notes = notes
	s.editIndex = noEdit
	s.logger.Debug("notes loaded", "count", len(notes), "found", found)
	return nil
}

// Add appends a new uncompleted note.
// Invalid input returns an error wrapping ErrInvalidNote and leaves the list unchanged.
func (s *Service) Add(ctx context.Context, title, content, deadline string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(ctx, Draft{Title: title, Content: content, Deadline: deadline})
}

func (s *Service) add(ctx context.Context, d Draft) (Note, error) {
	if err := d.Validate(); err != nil {
		s.logger.Debug("add rejected", "error", err)
		return Note{}, err
	}
	d = d.Normalize()

	n := Note{
		Title:     d.Title,
		Content:   d.Content,
		Completed: false,
		CreatedAt: s.now(),
		Deadline:  d.Deadline,
	}
	s.notes = append(s.notes, n)
	return n, s.persist(ctx)
}

// StartEdit enters edit mode for the note at index and returns a draft
// carrying its current title and content. The deadline is left blank and
// must be supplied again on Submit.
func (s *Service) StartEdit(index int) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return Draft{}, err
	}
	n := s.notes[index]
	if n.IsExpired(s.now(), s.loc) {
		s.logger.Debug("edit rejected", "index", index, "error", ErrExpired)
		return Draft{}, fmt.Errorf("edit note %d: %w", index, ErrExpired)
	}

	s.editIndex = index
	return Draft{Title: n.Title, Content: n.Content}, nil
}

// CancelEdit leaves edit mode without touching the list.
func (s *Service) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editIndex = noEdit
}

// Editing returns the index being edited, if any.
func (s *Service) Editing() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editIndex, s.editIndex != noEdit
}

// Submit applies a draft: it replaces the edited note in edit mode and adds
// a new note otherwise. An invalid draft changes nothing, edit mode included.
// Expiry is checked again here: a note that passed its deadline after
// StartEdit is not changed and edit mode ends with ErrExpired.
func (s *Service) Submit(ctx context.Context, d Draft) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editIndex == noEdit {
		return s.add(ctx, d)
	}

	n, err := s.replaceAt(s.editIndex, d)
	if errors.Is(err, ErrExpired) {
		s.editIndex = noEdit
	}
	if err != nil {
		return Note{}, err
	}
	s.editIndex = noEdit

	return n, s.persist(ctx)
}

// Edit replaces title, content and deadline of the note at index in one step.
// It does not enter or leave edit mode, so an edit another caller started
// with StartEdit stays pointed at its note.
func (s *Service) Edit(ctx context.Context, index int, d Draft) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return Note{}, err
	}
	n, err := s.replaceAt(index, d)
	if err != nil {
		return Note{}, err
	}
	return n, s.persist(ctx)
}

// replaceAt applies d to the note at index unless the note is expired or d
// is invalid. Callers hold s.mu, check index and persist afterwards.
func (s *Service) replaceAt(index int, d Draft) (Note, error) {
	n := &s.notes[index]
	if n.IsExpired(s.now(), s.loc) {
		s.logger.Debug("edit rejected", "index", index, "error", ErrExpired)
		return Note{}, fmt.Errorf("edit note %d: %w", index, ErrExpired)
	}
	if err := d.Validate(); err != nil {
		s.logger.Debug("edit rejected", "index", index, "error", err)
		return Note{}, err
	}
	d = d.Normalize()

	n.Title = d.Title
	n.Content = d.Content
	n.Deadline = d.Deadline
	return *n, nil
}

// Delete removes the note at index. Expired notes may be deleted.
func (s *Service) Delete(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.notes = slices.Delete(s.notes, index, index+1)

	switch {
	case s.editIndex == index:
		s.editIndex = noEdit
	case s.editIndex > index:
		s.editIndex--
	}

	return s.persist(ctx)
}

// ToggleComplete flips the completed flag of the note at index.
// Expired notes are locked.
func (s *Service) ToggleComplete(ctx context.Context, index int) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return Note{}, err
	}
	n := &s.notes[index]
	if n.IsExpired(s.now(), s.loc) {
		s.logger.Debug("toggle rejected", "index", index, "error", ErrExpired)
		return Note{}, fmt.Errorf("toggle note %d: %w", index, ErrExpired)
	}
	n.Completed = !n.Completed
	updated := *n

	return updated, s.persist(ctx)
}

// Replace swaps the whole list, e.g. after an import. Every note must carry
// a title and a deadline; both are trimmed the way Add trims them.
func (s *Service) Replace(ctx context.Context, notes []Note) error {
	clean := make([]Note, len(notes))
	for i, n := range notes {
		d := Draft{Title: n.Title, Content: n.Content, Deadline: n.Deadline}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("note %d: %w", i, err)
		}
		d = d.Normalize()
		n.Title = d.Title
		n.Deadline = d.Deadline
		clean[i] = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = clean
	s.editIndex = noEdit
	return s.persist(ctx)
}

// IsExpired reports whether n is past its deadline now.
func (s *Service) IsExpired(n Note) bool {
	return n.IsExpired(s.now(), s.loc)
}

// Notes returns a copy of the current list.
func (s *Service) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

// Len returns the number of notes.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// View computes the derived view for q.
func (s *Service) View(q Query) View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BuildView(s.notes, q, s.now(), s.loc)
}

func (s *Service) checkIndex(index int) error {
	if index < 0 || index >= len(s.notes) {
		return fmt.Errorf("%w: %d (have %d notes)", ErrIndexOutOfRange, index, len(s.notes))
	}
	return nil
}

// persist mirrors the list to the slot. Callers hold s.mu.
// The in-memory list stays authoritative when the mirror fails.
func (s *Service) persist(ctx context.Context) error {
	if err := s.slot.Store(ctx, slices.Clone(s.notes)); err != nil {
		s.logger.Warn("failed to mirror notes", "count", len(s.notes), "error", err)
		return fmt.Errorf("mirror notes: %w", err)
	}
	return nil
}
