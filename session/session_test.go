// ABOUTME: Tests for the call session state machine
// ABOUTME: Walks inbound, outbound and manual flows and rejects invalid events
package session

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/callbook/backing"
	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/store"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func setup(t *testing.T) (*Session, *store.Store, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)}
	st := store.New(backing.NewMemory(), store.WithLogger(log.New(io.Discard)), store.WithClock(c.now))
	require.NoError(t, st.Init(context.Background()))
	return New(st, WithClock(c.now)), st, c
}

var ann = models.Contact{ID: "c1", Name: "Ann", PhoneNumber: "555-0100"}

func TestInboundCallFlow(t *testing.T) {
	ctx := context.Background()
	s, st, c := setup(t)

	require.NoError(t, s.Ring(ann))
	v := s.View()
	assert.Equal(t, StateIncomingRinging, v.State)
	assert.NotEmpty(t, v.ID)

	require.NoError(t, s.Answer())
	c.advance(90 * time.Second)
	require.NoError(t, s.HangUp())

	v = s.View()
	assert.Equal(t, StateIdle, v.State)
	assert.True(t, v.Editing)

	note, suggestion, err := s.Save(ctx, Draft{Text: "Call back at 3pm", Tags: []string{"callback"}})
	require.NoError(t, err)
	assert.Equal(t, models.DirectionInbound, note.CallDirection)
	assert.Equal(t, int64(90), note.CallDuration)
	assert.Equal(t, "Ann", note.ContactName)

	require.NotNil(t, suggestion)
	assert.Equal(t, time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC), suggestion.DueDate)
	assert.Equal(t, note.ID, suggestion.RelatedNoteID)

	assert.Equal(t, View{State: StateIdle}, s.View())
	assert.Len(t, st.Notes(ctx), 1)

	r, err := st.AddReminder(ctx, suggestion.Reminder())
	require.NoError(t, err)
	assert.Equal(t, "Follow up with Ann", r.Title)
}

func TestOutboundCallWithEmptyNote(t *testing.T) {
	s, _, c := setup(t)
	require.NoError(t, s.Dial(ann))
	c.advance(time.Minute)
	require.NoError(t, s.HangUp())

	note, suggestion, err := s.Save(context.Background(), Draft{})
	require.NoError(t, err)
	assert.True(t, note.IsAutoGenerated)
	assert.Equal(t, models.DirectionOutbound, note.CallDirection)
	assert.Nil(t, suggestion)
}

func TestDeclineReturnsToIdleWithoutEditing(t *testing.T) {
	s, _, _ := setup(t)
	require.NoError(t, s.Ring(ann))
	require.NoError(t, s.Decline())
	assert.Equal(t, View{State: StateIdle}, s.View())
	assert.ErrorIs(t, s.Skip(), ErrInvalidTransition)
}

func TestManualNote(t *testing.T) {
	s, _, _ := setup(t)
	require.NoError(t, s.PickContact(ann))
	assert.True(t, s.View().Editing)

	bo := models.Contact{ID: "c2", Name: "Bo"}
	require.NoError(t, s.PickContact(bo))
	assert.Equal(t, "Bo", s.View().Contact.Name)

	note, _, err := s.Save(context.Background(), Draft{Text: "sent brochure"})
	require.NoError(t, err)
	assert.Equal(t, "c2", note.ContactID)
	assert.Equal(t, int64(0), note.CallDuration)
}

func TestSkipDiscardsNote(t *testing.T) {
	s, st, _ := setup(t)
	require.NoError(t, s.Dial(ann))
	require.NoError(t, s.HangUp())
	require.NoError(t, s.Skip())
	assert.Empty(t, st.Notes(context.Background()))
	assert.False(t, s.View().Editing)
}

func TestInvalidTransitions(t *testing.T) {
	s, _, _ := setup(t)
	assert.ErrorIs(t, s.Answer(), ErrInvalidTransition)
	assert.ErrorIs(t, s.HangUp(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Decline(), ErrInvalidTransition)
	_, _, err := s.Save(context.Background(), Draft{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, s.Dial(ann))
	assert.ErrorIs(t, s.Ring(ann), ErrInvalidTransition)
	assert.ErrorIs(t, s.PickContact(ann), ErrInvalidTransition)
	assert.ErrorIs(t, s.Dial(ann), ErrInvalidTransition)

	require.NoError(t, s.HangUp())
	assert.ErrorIs(t, s.Dial(ann), ErrInvalidTransition, "editing blocks a new call")
}

func TestResetClearsEverything(t *testing.T) {
	s, _, _ := setup(t)
	require.NoError(t, s.Ring(ann))
	require.NoError(t, s.Answer())
	s.Reset()
	assert.Equal(t, View{State: StateIdle}, s.View())
}

type failingWriter struct{ err error }

func (f failingWriter) AddNote(context.Context, store.NewNote) (models.CallNote, error) {
	return models.CallNote{}, f.err
}

func TestFailedSaveKeepsEditorOpen(t *testing.T) {
	boom := errors.New("write failed")
	s := New(failingWriter{err: boom})
	require.NoError(t, s.PickContact(ann))

	_, _, err := s.Save(context.Background(), Draft{Text: "x"})
	assert.ErrorIs(t, err, boom)
	assert.True(t, s.View().Editing)
}

func TestSuggestionsCanBeDisabled(t *testing.T) {
	_, st, c := setup(t)
	s := New(st, WithClock(c.now), WithTimeParser(nil))
	require.NoError(t, s.PickContact(ann))
	_, suggestion, err := s.Save(context.Background(), Draft{Text: "tomorrow at 9am"})
	require.NoError(t, err)
	assert.Nil(t, suggestion)
}
