package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"resume-editor/internal/domain"
)

// SnapshotStore is the process-external key-value snapshot of the last
// generated document and artifact state.
type SnapshotStore interface {
	LoadDocument(ctx context.Context) (*domain.Document, error)
	LoadCompany(ctx context.Context) (string, error)
	SaveResult(ctx context.Context, doc *domain.Document, viewURL, status string) error
}

// ErrNoSnapshot is returned by SnapshotStore implementations when no
// document has ever been persisted.
var ErrNoSnapshot = errors.New("no persisted resume snapshot")

var (
	ErrNothingToEdit = errors.New("no generated resume to edit")
	ErrSessionOpen   = errors.New("edit session already open")
	ErrSessionClosed = errors.New("no open edit session")
)

// State of the edit session.
type State int

const (
	StateClosed State = iota
	StateEditing
)

// Session coordinates navigation between sections of a single in-memory
// document. Leaving a section always attempts to parse and commit its
// current view before the next one is rendered. At most one session is
// meant to be open at a time; the caller enforces that discipline.
type Session struct {
	state  State
	active domain.SectionName
	store  *DocumentStore
	view   *View

	snapshots SnapshotStore
	coord     *Coordinator

	lastParseErr error
}

func NewSession(snapshots SnapshotStore, coord *Coordinator) *Session {
	return &Session{snapshots: snapshots, coord: coord}
}

func (s *Session) State() State               { return s.state }
func (s *Session) Active() domain.SectionName { return s.active }
func (s *Session) View() *View                { return s.view }

// LastParseError reports the most recent skipped commit, if any. The
// affected section kept its previous canonical value.
func (s *Session) LastParseError() error { return s.lastParseErr }

// Open starts editing at the given section. The working document is a deep
// copy of the persisted snapshot, created the first time a session opens
// and reused when one survived an earlier session.
func (s *Session) Open(ctx context.Context, initial domain.SectionName) (*View, error) {
	if s.state == StateEditing {
		return nil, ErrSessionOpen
	}
	if s.store == nil {
		snap, err := s.snapshots.LoadDocument(ctx)
		if err != nil {
			if errors.Is(err, ErrNoSnapshot) {
				return nil, ErrNothingToEdit
			}
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		s.store = NewDocumentStore(snap.Clone())
	}
	s.state = StateEditing
	s.lastParseErr = nil
	// the active section is recorded as part of the render step, with no
	// timing dependency
	s.active = initial
	s.view = Render(initial, s.store.Document())
	return s.view, nil
}

// SetView replaces the working view with the caller's edited copy. The
// view must belong to the active section.
func (s *Session) SetView(v *View) error {
	if s.state != StateEditing {
		return ErrSessionClosed
	}
	if v == nil || v.Section != s.active {
		return fmt.Errorf("view does not match active section %q", s.active)
	}
	s.view = v
	return nil
}

// Switch commits the section being left and renders the next one. The
// target is always rendered, whatever the parse outcome for the section
// being left.
func (s *Session) Switch(to domain.SectionName) (*View, error) {
	if s.state != StateEditing {
		return nil, ErrSessionClosed
	}
	s.commitActive()
	s.active = to
	s.view = Render(to, s.store.Document())
	return s.view, nil
}

// Save commits the active section, regenerates the artifact, and on
// success closes the session with the edited document promoted to the new
// persisted snapshot. On failure the session stays open for a retry.
func (s *Session) Save(ctx context.Context) (string, error) {
	if s.state != StateEditing {
		return "", ErrSessionClosed
	}
	s.commitActive()
	company, err := s.snapshots.LoadCompany(ctx)
	if err != nil {
		log.Printf("session: no stored company, using fallback: %v", err)
		company = "Unknown_Company"
	}
	viewURL, err := s.coord.Regenerate(ctx, s.store.Document(), company)
	if err != nil {
		return "", err
	}
	s.state = StateClosed
	s.store = nil
	s.view = nil
	return viewURL, nil
}

// Cancel discards the working document and unflushed edits. The persisted
// snapshot and artifact reference are untouched.
func (s *Session) Cancel() {
	s.state = StateClosed
	s.store = nil
	s.view = nil
	s.lastParseErr = nil
}

// commitActive parses the live view and writes the result into the store.
// A parse failure skips the write; the canonical value stays untouched and
// the failure is retained for the caller.
func (s *Session) commitActive() {
	val, err := Parse(s.view)
	if err != nil {
		s.lastParseErr = err
		log.Printf("session: keeping previous value for %s: %v", s.active, err)
		return
	}
	s.lastParseErr = nil
	if err := s.store.Commit(s.active, val); err != nil {
		s.lastParseErr = err
		log.Printf("session: commit %s failed: %v", s.active, err)
	}
}
