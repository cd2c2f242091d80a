package websocket

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	events []interface{}
	closed bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, v)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) recorded() []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]interface{}, len(f.events))
	copy(out, f.events)
	return out
}

func (f *fakeConn) countEvent(name string) int {
	count := 0
	for _, e := range f.recorded() {
		switch event := e.(type) {
		case ReceiveMessageEvent:
			if event.Event == name {
				count++
			}
		case TypingIndicatorEvent:
			if event.Event == name {
				count++
			}
		case ActiveUsersEvent:
			if event.Event == name {
				count++
			}
		case MessageAckEvent:
			if event.Event == name {
				count++
			}
		case MessageErrorEvent:
			if event.Event == name {
				count++
			}
		}
	}
	return count
}

func addClient(t *testing.T, hub *Hub, id string) (*Client, *fakeConn) {
	t.Helper()
	conn := &fakeConn{}
	client := &Client{ID: id, Conn: conn}
	hub.AddClient(client)
	return client, conn
}

func TestIdentifyLastWriterWins(t *testing.T) {
	hub := NewHub()
	first, _ := addClient(t, hub, "conn-1")
	second, _ := addClient(t, hub, "conn-2")

	hub.Identify(first, "u1")
	require.Equal(t, []string{"u1"}, hub.ActiveUsers())

	// A second tab for the same user replaces the first mapping.
	hub.Identify(second, "u1")
	require.Equal(t, []string{"u1"}, hub.ActiveUsers())

	// Dropping the stale connection does not remove the fresh mapping.
	hub.RemoveClient(first.ID)
	require.Equal(t, []string{"u1"}, hub.ActiveUsers())

	hub.RemoveClient(second.ID)
	require.Empty(t, hub.ActiveUsers())
}

func TestActiveUsersSorted(t *testing.T) {
	hub := NewHub()
	a, _ := addClient(t, hub, "conn-a")
	b, _ := addClient(t, hub, "conn-b")

	hub.Identify(b, "zoe")
	hub.Identify(a, "amy")
	require.Equal(t, []string{"amy", "zoe"}, hub.ActiveUsers())
}

func TestJoinIdempotentLeaveNoop(t *testing.T) {
	hub := NewHub()
	client, conn := addClient(t, hub, "conn-1")

	hub.Join(client.ID, "u1-u2")
	hub.Join(client.ID, "u1-u2")

	hub.BroadcastToRoom("u1-u2", ReceiveMessageEvent{Event: EventReceiveMessage}, "")
	require.Equal(t, 1, conn.countEvent(EventReceiveMessage))

	// Leaving a room never joined is a no-op.
	hub.Leave(client.ID, "never-joined")
	hub.Leave(client.ID, "u1-u2")
	hub.Leave(client.ID, "u1-u2")

	hub.BroadcastToRoom("u1-u2", ReceiveMessageEvent{Event: EventReceiveMessage}, "")
	require.Equal(t, 1, conn.countEvent(EventReceiveMessage))
}

func TestBroadcastReachesAllRoomMembersIncludingSender(t *testing.T) {
	hub := NewHub()
	conns := make([]*fakeConn, 3)
	for i, id := range []string{"conn-1", "conn-2", "conn-3"} {
		client, conn := addClient(t, hub, id)
		hub.Join(client.ID, "u1-u2")
		conns[i] = conn
	}
	outsider, outsiderConn := addClient(t, hub, "conn-4")
	_ = outsider

	hub.BroadcastToRoom("u1-u2", ReceiveMessageEvent{Event: EventReceiveMessage}, "")

	for _, conn := range conns {
		require.Equal(t, 1, conn.countEvent(EventReceiveMessage))
	}
	require.Equal(t, 0, outsiderConn.countEvent(EventReceiveMessage))
}

func TestBroadcastExcludesConnection(t *testing.T) {
	hub := NewHub()
	sender, senderConn := addClient(t, hub, "conn-1")
	_, otherConn := addClient(t, hub, "conn-2")
	hub.Join("conn-1", "u1-u2")
	hub.Join("conn-2", "u1-u2")

	hub.BroadcastToRoom("u1-u2", TypingIndicatorEvent{Event: EventTypingIndicator, IsTyping: true}, sender.ID)

	require.Equal(t, 0, senderConn.countEvent(EventTypingIndicator))
	require.Equal(t, 1, otherConn.countEvent(EventTypingIndicator))
}

func TestRemoveClientDropsRoomMembership(t *testing.T) {
	hub := NewHub()
	client, _ := addClient(t, hub, "conn-1")
	_, stayConn := addClient(t, hub, "conn-2")
	hub.Join("conn-1", "u1-u2")
	hub.Join("conn-2", "u1-u2")

	hub.RemoveClient(client.ID)

	hub.BroadcastToRoom("u1-u2", ReceiveMessageEvent{Event: EventReceiveMessage}, "")
	require.Equal(t, 1, stayConn.countEvent(EventReceiveMessage))
}

func TestBroadcastActiveUsersReachesUnidentified(t *testing.T) {
	hub := NewHub()
	identified, identifiedConn := addClient(t, hub, "conn-1")
	_, anonConn := addClient(t, hub, "conn-2")

	hub.Identify(identified, "u1")
	hub.BroadcastActiveUsers()

	require.Equal(t, 1, identifiedConn.countEvent(EventActiveUsers))
	require.Equal(t, 1, anonConn.countEvent(EventActiveUsers))
}
