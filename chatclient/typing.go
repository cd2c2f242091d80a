package chatclient

import (
	"sync"
	"time"

	ws "github.com/jkamau589/pet_haven/websocket"
)

// TypingIdleTimeout is how long after the last keystroke the stop-typing
// signal goes out.
const TypingIdleTimeout = 3 * time.Second

// typingState emits user_typing on each keystroke burst and arms an idle
// timer per conversation. If no further keystroke resets it, exactly one
// user_stop_typing follows. Best effort: emit failures are dropped.
type typingState struct {
	mu     sync.Mutex
	idle   time.Duration
	emit   func(ws.Envelope) error
	timers map[string]*time.Timer
}

func (t *typingState) keystroke(conversationID, senderName string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.timers[conversationID]; ok {
		timer.Reset(t.idle)
		return
	}

	_ = t.emit(ws.Envelope{
		Event:          ws.EventUserTyping,
		ConversationID: conversationID,
		SenderName:     senderName,
	})
	t.timers[conversationID] = time.AfterFunc(t.idle, func() {
		t.stop(conversationID)
	})
}

func (t *typingState) stop(conversationID string) {
	t.mu.Lock()
	delete(t.timers, conversationID)
	t.mu.Unlock()

	_ = t.emit(ws.Envelope{
		Event:          ws.EventUserStopTyping,
		ConversationID: conversationID,
	})
}

func (t *typingState) stopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for conversationID, timer := range t.timers {
		timer.Stop()
		delete(t.timers, conversationID)
	}
}
