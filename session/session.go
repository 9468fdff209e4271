// ABOUTME: In-memory call session state machine driving note creation
// ABOUTME: Idle, ringing and active call states plus an orthogonal note-editing phase
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/store"
	"github.com/harperreed/callbook/timeparse"
)

// ErrInvalidTransition is returned when an event does not apply in the current state.
var ErrInvalidTransition = errors.New("session: invalid transition")

type State string

const (
	StateIdle            State = "idle"
	StateIncomingRinging State = "incoming-ringing"
	StateActive          State = "active"
)

// NoteWriter persists the note a session produces.
type NoteWriter interface {
	AddNote(ctx context.Context, in store.NewNote) (models.CallNote, error)
}

// Draft is what the user typed while editing.
type Draft struct {
	Text         string
	Status       models.NoteStatus
	CustomStatus string
	Priority     models.Priority
	Tags         []string
	Category     string
	FolderID     string
}

// ReminderSuggestion is offered after saving a note that mentions a time.
// Nothing is persisted until the caller accepts it.
type ReminderSuggestion struct {
	ContactID     string    `json:"contactId"`
	ContactName   string    `json:"contactName"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DueDate       time.Time `json:"dueDate"`
	RelatedNoteID string    `json:"relatedNoteId"`
}

// Reminder converts the suggestion into store input.
func (r *ReminderSuggestion) Reminder() store.NewReminder {
	return store.NewReminder{
		ContactID:     r.ContactID,
		ContactName:   r.ContactName,
		Title:         r.Title,
		Description:   r.Description,
		DueDate:       r.DueDate,
		RelatedNoteID: r.RelatedNoteID,
	}
}

// View is a read-only copy of the session.
type View struct {
	ID        string               `json:"id,omitempty"`
	State     State                `json:"state"`
	Editing   bool                 `json:"editing"`
	Contact   *models.Contact      `json:"contact,omitempty"`
	Direction models.CallDirection `json:"direction,omitempty"`
	StartedAt time.Time            `json:"startedAt,omitempty"`
	EndedAt   time.Time            `json:"endedAt,omitempty"`
}

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithTimeParser replaces the parser used for reminder suggestions. A nil
// parser disables suggestions.
func WithTimeParser(parse timeparse.Func) Option {
	return func(s *Session) { s.parse = parse }
}

// Session tracks one call at a time. It is safe for concurrent use.
type Session struct {
	mu     sync.Mutex
	writer NoteWriter
	now    func() time.Time
	parse  timeparse.Func

	id        string
	state     State
	editing   bool
	contact   *models.Contact
	direction models.CallDirection
	startedAt time.Time
	endedAt   time.Time
}

func New(writer NoteWriter, opts ...Option) *Session {
	s := &Session{
		writer: writer,
		now:    time.Now,
		parse:  timeparse.Parse,
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		ID:        s.id,
		State:     s.state,
		Editing:   s.editing,
		Direction: s.direction,
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
	}
	if s.contact != nil {
		c := *s.contact
		v.Contact = &c
	}
	return v
}

func (s *Session) invalid(event string) error {
	return fmt.Errorf("%w: %s while %s (editing=%t)", ErrInvalidTransition, event, s.state, s.editing)
}

func (s *Session) begin(contact models.Contact, direction models.CallDirection) {
	c := contact
	s.id = uuid.NewString()
	s.contact = &c
	s.direction = direction
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
}

// Ring starts an incoming call.
func (s *Session) Ring(contact models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle || s.editing {
		return s.invalid("ring")
	}
	s.begin(contact, models.DirectionInbound)
	s.state = StateIncomingRinging
	return nil
}

func (s *Session) Answer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIncomingRinging {
		return s.invalid("answer")
	}
	s.state = StateActive
	s.startedAt = s.now()
	return nil
}

// Decline rejects a ringing call without taking a note.
func (s *Session) Decline() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIncomingRinging {
		return s.invalid("decline")
	}
	s.clear()
	return nil
}

// Dial starts an outgoing call.
func (s *Session) Dial(contact models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle || s.editing {
		return s.invalid("dial")
	}
	s.begin(contact, models.DirectionOutbound)
	s.state = StateActive
	s.startedAt = s.now()
	return nil
}

// HangUp ends the active call and opens the note editor.
func (s *Session) HangUp() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return s.invalid("hang up")
	}
	s.state = StateIdle
	s.endedAt = s.now()
	s.editing = true
	return nil
}

// PickContact opens the note editor for a manual note, or switches the
// contact of the note being edited.
func (s *Session) PickContact(contact models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return s.invalid("pick contact")
	}
	if s.editing {
		c := contact
		s.contact = &c
		return nil
	}
	s.begin(contact, models.DirectionOutbound)
	now := s.now()
	s.startedAt = now
	s.endedAt = now
	s.editing = true
	return nil
}

// Save writes the note and returns to idle. If the text mentions a time, a
// reminder suggestion is returned alongside the note. A failed write keeps
// the editor open so the caller can retry.
func (s *Session) Save(ctx context.Context, d Draft) (models.CallNote, *ReminderSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing || s.contact == nil {
		return models.CallNote{}, nil, s.invalid("save")
	}

	note, err := s.writer.AddNote(ctx, store.NewNote{
		ContactID:     s.contact.ID,
		ContactName:   s.contact.Name,
		Note:          d.Text,
		CallStartTime: s.startedAt,
		CallEndTime:   s.endedAt,
		CallDirection: s.direction,
		Status:        d.Status,
		CustomStatus:  d.CustomStatus,
		Priority:      d.Priority,
		Tags:          d.Tags,
		Category:      d.Category,
		FolderID:      d.FolderID,
	})
	if err != nil {
		return models.CallNote{}, nil, fmt.Errorf("save note: %w", err)
	}

	suggestion := s.suggest(note)
	s.clear()
	return note, suggestion, nil
}

func (s *Session) suggest(note models.CallNote) *ReminderSuggestion {
	text := strings.TrimSpace(note.Note)
	if text == "" || s.parse == nil {
		return nil
	}
	due, ok := s.parse(text, s.now(), true)
	if !ok {
		return nil
	}
	return &ReminderSuggestion{
		ContactID:     note.ContactID,
		ContactName:   note.ContactName,
		Title:         reminderTitle(note.ContactName),
		Description:   text,
		DueDate:       due,
		RelatedNoteID: note.ID,
	}
}

func reminderTitle(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Follow up"
	}
	return "Follow up with " + name
}

// Skip closes the editor without saving.
func (s *Session) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		return s.invalid("skip")
	}
	s.clear()
	return nil
}

// Reset returns to idle from any state. Used when the call screen closes.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

func (s *Session) clear() {
	s.id = ""
	s.state = StateIdle
	s.editing = false
	s.contact = nil
	s.direction = ""
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
}
