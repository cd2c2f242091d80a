package chatclient

import (
	"sync"
	"testing"
	"time"

	ws "github.com/jkamau589/pet_haven/websocket"
	"github.com/stretchr/testify/require"
)

type emitRecorder struct {
	mu     sync.Mutex
	events []ws.Envelope
}

func (r *emitRecorder) emit(env ws.Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, env)
	return nil
}

func (r *emitRecorder) byEvent(name string) []ws.Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ws.Envelope
	for _, e := range r.events {
		if e.Event == name {
			out = append(out, e)
		}
	}
	return out
}

func newTypingState(idle time.Duration, rec *emitRecorder) *typingState {
	return &typingState{idle: idle, emit: rec.emit, timers: map[string]*time.Timer{}}
}

func TestTypingEmitsOncePerBurst(t *testing.T) {
	rec := &emitRecorder{}
	state := newTypingState(50*time.Millisecond, rec)

	for i := 0; i < 5; i++ {
		state.keystroke("u1-u2", "Alice")
		time.Sleep(5 * time.Millisecond)
	}

	typing := rec.byEvent(ws.EventUserTyping)
	require.Len(t, typing, 1)
	require.Equal(t, "u1-u2", typing[0].ConversationID)
	require.Equal(t, "Alice", typing[0].SenderName)
	require.Empty(t, rec.byEvent(ws.EventUserStopTyping))
}

func TestTypingStopsAfterIdle(t *testing.T) {
	rec := &emitRecorder{}
	state := newTypingState(30*time.Millisecond, rec)

	state.keystroke("u1-u2", "Alice")
	time.Sleep(100 * time.Millisecond)

	require.Len(t, rec.byEvent(ws.EventUserStopTyping), 1)
	require.Equal(t, "u1-u2", rec.byEvent(ws.EventUserStopTyping)[0].ConversationID)
}

func TestTypingKeystrokeResetsIdleTimer(t *testing.T) {
	rec := &emitRecorder{}
	state := newTypingState(60*time.Millisecond, rec)

	state.keystroke("u1-u2", "Alice")
	time.Sleep(40 * time.Millisecond)
	state.keystroke("u1-u2", "Alice")
	time.Sleep(40 * time.Millisecond)

	// Two keystrokes 40ms apart with a 60ms idle window: still typing.
	require.Empty(t, rec.byEvent(ws.EventUserStopTyping))

	time.Sleep(60 * time.Millisecond)
	require.Len(t, rec.byEvent(ws.EventUserStopTyping), 1)

	// A fresh burst after the stop emits user_typing again.
	state.keystroke("u1-u2", "Alice")
	require.Len(t, rec.byEvent(ws.EventUserTyping), 2)
}

func TestTypingTracksConversationsIndependently(t *testing.T) {
	rec := &emitRecorder{}
	state := newTypingState(50*time.Millisecond, rec)

	state.keystroke("u1-u2", "Alice")
	state.keystroke("u1-u3", "Alice")

	require.Len(t, rec.byEvent(ws.EventUserTyping), 2)

	time.Sleep(120 * time.Millisecond)
	require.Len(t, rec.byEvent(ws.EventUserStopTyping), 2)
}

func TestStopAllCancelsTimers(t *testing.T) {
	rec := &emitRecorder{}
	state := newTypingState(30*time.Millisecond, rec)

	state.keystroke("u1-u2", "Alice")
	state.stopAll()
	time.Sleep(80 * time.Millisecond)

	require.Empty(t, rec.byEvent(ws.EventUserStopTyping))
}
