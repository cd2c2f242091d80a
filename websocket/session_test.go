package websocket

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jkamau589/pet_haven/chat"
	"github.com/jkamau589/pet_haven/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSessionStore(t *testing.T) (*chat.Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "chat.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Message{}))
	return chat.NewStore(db), db
}

func joinRoom(t *testing.T, hub *Hub, store *chat.Store, id, conv string) (*Client, *fakeConn) {
	t.Helper()
	client, conn := addClient(t, hub, id)
	HandleEvent(hub, store, client, &Envelope{Event: EventJoinConversation, ConversationID: conv})
	return client, conn
}

func lastAck(t *testing.T, conn *fakeConn) MessageAckEvent {
	t.Helper()
	for i := len(conn.recorded()) - 1; i >= 0; i-- {
		if ack, ok := conn.recorded()[i].(MessageAckEvent); ok {
			return ack
		}
	}
	t.Fatal("no message_ack received")
	return MessageAckEvent{}
}

func TestSendAcksThenBroadcastsToWholeRoom(t *testing.T) {
	store, _ := newSessionStore(t)
	hub := NewHub()

	sender, senderConn := joinRoom(t, hub, store, "conn-1", "u1-u2")
	_, peerConn := joinRoom(t, hub, store, "conn-2", "u1-u2")

	HandleEvent(hub, store, sender, &Envelope{
		Event:          EventSendMessage,
		AckID:          "ack-1",
		ConversationID: "u1-u2",
		SenderID:       "u1",
		SenderName:     "Alice",
		Text:           "hello",
	})

	ack := lastAck(t, senderConn)
	require.True(t, ack.Success)
	require.Equal(t, "ack-1", ack.AckID)
	require.NotNil(t, ack.Message)

	// Every room member, sender included, gets exactly one broadcast with
	// the acked message id.
	for _, conn := range []*fakeConn{senderConn, peerConn} {
		require.Equal(t, 1, conn.countEvent(EventReceiveMessage))
		for _, e := range conn.recorded() {
			if received, ok := e.(ReceiveMessageEvent); ok {
				require.Equal(t, ack.Message.ID, received.Message.ID)
			}
		}
	}
}

func TestSendValidationFailure(t *testing.T) {
	store, _ := newSessionStore(t)
	hub := NewHub()

	sender, senderConn := joinRoom(t, hub, store, "conn-1", "u1-u2")
	_, peerConn := joinRoom(t, hub, store, "conn-2", "u1-u2")

	HandleEvent(hub, store, sender, &Envelope{
		Event:          EventSendMessage,
		AckID:          "ack-1",
		ConversationID: "u1-u2",
		SenderID:       "u1",
		Text:           "",
	})

	ack := lastAck(t, senderConn)
	require.False(t, ack.Success)
	require.Nil(t, ack.Message)

	// No broadcast, no message_error (that is reserved for storage
	// failures), no persisted message.
	require.Equal(t, 0, senderConn.countEvent(EventReceiveMessage))
	require.Equal(t, 0, peerConn.countEvent(EventReceiveMessage))
	require.Equal(t, 0, senderConn.countEvent(EventMessageError))

	messages, err := store.ListSince("u1-u2", time.Time{})
	require.NoError(t, err)
	require.Empty(t, messages)
}

func TestSendStorageFailureEmitsMessageError(t *testing.T) {
	store, db := newSessionStore(t)
	hub := NewHub()

	sender, senderConn := joinRoom(t, hub, store, "conn-1", "u1-u2")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	HandleEvent(hub, store, sender, &Envelope{
		Event:          EventSendMessage,
		AckID:          "ack-1",
		ConversationID: "u1-u2",
		SenderID:       "u1",
		SenderName:     "Alice",
		Text:           "hello",
	})

	ack := lastAck(t, senderConn)
	require.False(t, ack.Success)
	require.Equal(t, 1, senderConn.countEvent(EventMessageError))
	require.Equal(t, 0, senderConn.countEvent(EventReceiveMessage))
}

func TestSenderOutsideRoomStillPersistsAndAcks(t *testing.T) {
	store, _ := newSessionStore(t)
	hub := NewHub()

	// No join_conversation: send still persists and acks, the sender just
	// misses the broadcast.
	sender, senderConn := addClient(t, hub, "conn-1")
	_, peerConn := joinRoom(t, hub, store, "conn-2", "u1-u2")

	HandleEvent(hub, store, sender, &Envelope{
		Event:          EventSendMessage,
		AckID:          "ack-1",
		ConversationID: "u1-u2",
		SenderID:       "u1",
		SenderName:     "Alice",
		Text:           "hello",
	})

	require.True(t, lastAck(t, senderConn).Success)
	require.Equal(t, 0, senderConn.countEvent(EventReceiveMessage))
	require.Equal(t, 1, peerConn.countEvent(EventReceiveMessage))
}

func TestTypingEventsExcludeSender(t *testing.T) {
	store, _ := newSessionStore(t)
	hub := NewHub()

	sender, senderConn := joinRoom(t, hub, store, "conn-1", "u1-u2")
	_, peerConn := joinRoom(t, hub, store, "conn-2", "u1-u2")

	HandleEvent(hub, store, sender, &Envelope{
		Event:          EventUserTyping,
		ConversationID: "u1-u2",
		SenderName:     "Alice",
	})
	HandleEvent(hub, store, sender, &Envelope{
		Event:          EventUserStopTyping,
		ConversationID: "u1-u2",
	})

	require.Equal(t, 0, senderConn.countEvent(EventTypingIndicator))
	require.Equal(t, 2, peerConn.countEvent(EventTypingIndicator))

	var events []TypingIndicatorEvent
	for _, e := range peerConn.recorded() {
		if typing, ok := e.(TypingIndicatorEvent); ok {
			events = append(events, typing)
		}
	}
	require.True(t, events[0].IsTyping)
	require.Equal(t, "Alice", events[0].SenderName)
	require.False(t, events[1].IsTyping)
	require.Empty(t, events[1].SenderName)
}

func TestUserJoinBroadcastsActiveUsers(t *testing.T) {
	store, _ := newSessionStore(t)
	hub := NewHub()

	client, conn := addClient(t, hub, "conn-1")
	_, otherConn := addClient(t, hub, "conn-2")

	HandleEvent(hub, store, client, &Envelope{Event: EventUserJoin, UserID: "u1"})

	require.Equal(t, 1, conn.countEvent(EventActiveUsers))
	require.Equal(t, 1, otherConn.countEvent(EventActiveUsers))
	require.Equal(t, []string{"u1"}, hub.ActiveUsers())
}
