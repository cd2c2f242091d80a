package websocket

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jkamau589/pet_haven/chat"
)

// Conn is the bidirectional connection a session runs on, satisfied by
// *websocket.Conn from gofiber/contrib.
type Conn interface {
	ReadJSON(v interface{}) error
	WriteJSON(v interface{}) error
	Close() error
}

// ServeConn runs the event loop for one connection until it closes. Every
// handler failure is converted into an ack or error event; nothing here
// tears down the process or the connection except a read error.
func ServeConn(conn Conn, hub *Hub, store *chat.Store) {
	client := &Client{ID: uuid.NewString(), Conn: conn}
	hub.AddClient(client)
	defer func() {
		hub.RemoveClient(client.ID)
		hub.BroadcastActiveUsers()
		conn.Close()
	}()

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			log.Printf("WebSocket closed for %s: %v", client.ID, err)
			return
		}
		HandleEvent(hub, store, client, &env)
	}
}

// HandleEvent dispatches one inbound frame.
func HandleEvent(hub *Hub, store *chat.Store, client *Client, env *Envelope) {
	switch env.Event {
	case EventUserJoin:
		hub.Identify(client, env.UserID)
		hub.BroadcastActiveUsers()

	case EventJoinConversation:
		hub.Join(client.ID, env.ConversationID)

	case EventLeaveConversation:
		hub.Leave(client.ID, env.ConversationID)

	case EventSendMessage:
		handleSend(hub, store, client, env)

	case EventUserTyping:
		hub.BroadcastToRoom(env.ConversationID, TypingIndicatorEvent{
			Event:          EventTypingIndicator,
			ConversationID: env.ConversationID,
			SenderName:     env.SenderName,
			IsTyping:       true,
		}, client.ID)

	case EventUserStopTyping:
		hub.BroadcastToRoom(env.ConversationID, TypingIndicatorEvent{
			Event:          EventTypingIndicator,
			ConversationID: env.ConversationID,
			IsTyping:       false,
		}, client.ID)

	default:
		log.Printf("Unknown event %q from client %s", env.Event, client.ID)
	}
}

// handleSend persists first, acks the sender, then broadcasts to the room.
// The sender renders its own message from the broadcast, not the ack, so
// everyone's timeline goes through the one code path.
func handleSend(hub *Hub, store *chat.Store, client *Client, env *Envelope) {
	msg, err := store.Append(env.ConversationID, env.SenderID, env.SenderName, env.Text)
	if err != nil {
		log.Printf("Failed to save message from client %s: %v", client.ID, err)
		writeTo(client, MessageAckEvent{Event: EventMessageAck, AckID: env.AckID, Success: false})

		var storageErr *chat.StorageError
		if errors.As(err, &storageErr) {
			writeTo(client, MessageErrorEvent{Event: EventMessageError, AckID: env.AckID, Error: "Failed to save message"})
		}
		return
	}

	writeTo(client, MessageAckEvent{Event: EventMessageAck, AckID: env.AckID, Success: true, Message: msg})
	hub.BroadcastToRoom(msg.ConversationID, ReceiveMessageEvent{Event: EventReceiveMessage, Message: msg}, "")
}

func writeTo(client *Client, event interface{}) {
	if err := client.Conn.WriteJSON(event); err != nil {
		log.Printf("Error writing to client %s: %v", client.ID, err)
	}
}
