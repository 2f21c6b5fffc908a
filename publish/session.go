package publish

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tdnortheast/artistportal/catalog"
	"github.com/tdnortheast/artistportal/draft"
)

var ErrSubmitting = errors.New("submission already in flight")

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

const (
	successDismiss = 2 * time.Second
	errorDismiss   = 3 * time.Second
)

// machine is the idle/submitting/success/error lifecycle shared by the edit
// and creation flows. Terminal states dismiss themselves back to
// idle after a fixed delay; there is no partial-success state and no
// cancelling an in-flight submission.
type machine struct {
	mu           sync.Mutex
	status       Status
	successDelay time.Duration
	errorDelay   time.Duration
}

func newMachine(successDelay, errorDelay time.Duration) machine {
	return machine{status: StatusIdle, successDelay: successDelay, errorDelay: errorDelay}
}

func (m *machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *machine) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusIdle {
		return ErrSubmitting
	}
	m.status = StatusSubmitting
	return nil
}

// finish moves to success or error and schedules the return to idle.
// onSuccessIdle runs when a successful submission dismisses.
func (m *machine) finish(err error, onSuccessIdle func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.status = StatusError
		time.AfterFunc(m.errorDelay, func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.status = StatusIdle
		})
		return
	}
	m.status = StatusSuccess
	time.AfterFunc(m.successDelay, func() {
		m.mu.Lock()
		m.status = StatusIdle
		m.mu.Unlock()
		if onSuccessIdle != nil {
			onSuccessIdle()
		}
	})
}

// Session is one artist's edit session for a single release: the draft plus
// the submission lifecycle. On success the draft resets to a clean copy; on
// error it is preserved so the artist can retry.
type Session struct {
	machine

	draftMu sync.Mutex
	draft   draft.Draft
}

func NewSession(release catalog.Release) *Session {
	return NewSessionDelays(release, successDismiss, errorDismiss)
}

// NewSessionDelays is NewSession with configurable dismiss delays.
func NewSessionDelays(release catalog.Release, successDelay, errorDelay time.Duration) *Session {
	return &Session{
		machine: newMachine(successDelay, errorDelay),
		draft:   draft.New(release),
	}
}

func (s *Session) Draft() draft.Draft {
	s.draftMu.Lock()
	defer s.draftMu.Unlock()
	return s.draft
}

// Update applies an edit to the draft, eg.
//
//	session.Update(func(d draft.Draft) draft.Draft {
//		return d.SetTrackTitle("1", "Intro (Remix)")
//	})
func (s *Session) Update(fn func(draft.Draft) draft.Draft) {
	s.draftMu.Lock()
	defer s.draftMu.Unlock()
	s.draft = fn(s.draft)
}

// Cancel throws away pending edits.
func (s *Session) Cancel() {
	s.draftMu.Lock()
	defer s.draftMu.Unlock()
	s.draft = s.draft.Reset()
}

// Submit runs the edit submission through the lifecycle. A clean draft is a
// no-op that stays idle.
func (s *Session) Submit(ctx context.Context, submitter *Submitter, artistName string) error {
	d := s.Draft()
	if !d.Dirty() {
		return nil
	}
	if err := s.begin(); err != nil {
		return err
	}

	err := submitter.SubmitEdit(ctx, artistName, d)
	s.finish(err, func() {
		s.draftMu.Lock()
		defer s.draftMu.Unlock()
		s.draft = s.draft.Reset()
	})
	return err
}

// FormSession is the creation counterpart of Session: a new-release form
// plus the same submission lifecycle. The form is kept on error and cleared
// once a success dismisses.
type FormSession struct {
	machine

	formMu sync.Mutex
	form   draft.Form
}

func NewFormSession() *FormSession {
	return NewFormSessionDelays(successDismiss, errorDismiss)
}

func NewFormSessionDelays(successDelay, errorDelay time.Duration) *FormSession {
	return &FormSession{
		machine: newMachine(successDelay, errorDelay),
		form:    draft.NewForm(),
	}
}

func (s *FormSession) Form() draft.Form {
	s.formMu.Lock()
	defer s.formMu.Unlock()
	return s.form
}

func (s *FormSession) Update(fn func(draft.Form) draft.Form) {
	s.formMu.Lock()
	defer s.formMu.Unlock()
	s.form = fn(s.form)
}

// Submit runs the new-release submission through the lifecycle. Incomplete
// forms are rejected before any state change.
func (s *FormSession) Submit(ctx context.Context, submitter *Submitter, artistID string) error {
	f := s.Form()
	if !f.CanSubmit() {
		return ErrIncomplete
	}
	if err := s.begin(); err != nil {
		return err
	}

	err := submitter.SubmitNew(ctx, artistID, f)
	s.finish(err, func() {
		s.formMu.Lock()
		defer s.formMu.Unlock()
		s.form = draft.NewForm()
	})
	return err
}
