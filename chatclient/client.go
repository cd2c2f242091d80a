package chatclient

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/google/uuid"
	"github.com/jkamau589/pet_haven/models"
	ws "github.com/jkamau589/pet_haven/websocket"
)

// ErrSendFailed is returned when the server acks a send with success=false.
var ErrSendFailed = errors.New("chatclient: send rejected by server")

// ErrDisconnected is returned when an operation is attempted while the
// connection is down and reconnection has given up.
var ErrDisconnected = errors.New("chatclient: not connected")

const (
	defaultMaxReconnects  = 5
	defaultReconnectDelay = 2 * time.Second
	writeWait             = 10 * time.Second
)

type Options struct {
	URL      string // ws:// endpoint
	UserID   string
	UserName string

	// Reconnection is bounded: after MaxReconnects failed attempts the
	// client stays down and OnDisconnect fires.
	MaxReconnects  int
	ReconnectDelay time.Duration

	OnMessage     func(models.Message)
	OnTyping      func(ws.TypingIndicatorEvent)
	OnActiveUsers func([]string)
	OnDisconnect  func(err error)
}

// Client is the realtime chat client. It announces the user identity on
// connect, tracks joined rooms so they can be rejoined after a reconnect,
// and correlates send acknowledgments by ackId.
type Client struct {
	opts Options

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	joined    map[string]bool
	pending   map[string]chan ws.MessageAckEvent

	send chan []byte
	done chan struct{}

	typing typingState
}

func New(opts Options) *Client {
	if opts.MaxReconnects == 0 {
		opts.MaxReconnects = defaultMaxReconnects
	}
	if opts.ReconnectDelay == 0 {
		opts.ReconnectDelay = defaultReconnectDelay
	}
	c := &Client{
		opts:    opts,
		joined:  map[string]bool{},
		pending: map[string]chan ws.MessageAckEvent{},
		send:    make(chan []byte, 256),
		done:    make(chan struct{}),
	}
	c.typing.idle = TypingIdleTimeout
	c.typing.timers = map[string]*time.Timer{}
	c.typing.emit = c.emit
	return c
}

// Connect dials the server, announces the user and starts the read/write
// pumps. It returns once the connection is established.
func (c *Client) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.opts.URL, nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.writePump(conn)
	go c.readPump(conn)

	return c.announce()
}

// announce identifies the connection and rejoins every room the caller
// had open, so reconnects restore room membership.
func (c *Client) announce() error {
	if err := c.emit(ws.Envelope{Event: ws.EventUserJoin, UserID: c.opts.UserID}); err != nil {
		return err
	}
	c.mu.Lock()
	rooms := make([]string, 0, len(c.joined))
	for room := range c.joined {
		rooms = append(rooms, room)
	}
	c.mu.Unlock()
	for _, room := range rooms {
		if err := c.emit(ws.Envelope{Event: ws.EventJoinConversation, ConversationID: room}); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) emit(env ws.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	c.mu.Lock()
	connected := c.connected
	c.mu.Unlock()
	if !connected {
		return ErrDisconnected
	}
	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return ErrDisconnected
	}
}

func (c *Client) writePump(conn *websocket.Conn) {
	for {
		select {
		case data := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("chatclient: write error: %v", err)
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) readPump(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				return
			default:
			}
			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()
			conn.Close()
			c.reconnect(err)
			return
		}
		c.dispatch(data)
	}
}

// reconnect retries with a growing delay. After the bounded attempts run
// out the client surfaces the failure and stays in a non-realtime state;
// the notification poller keeps working regardless.
func (c *Client) reconnect(cause error) {
	delay := c.opts.ReconnectDelay
	for attempt := 1; attempt <= c.opts.MaxReconnects; attempt++ {
		select {
		case <-c.done:
			return
		case <-time.After(delay):
		}

		log.Printf("chatclient: reconnect attempt %d/%d", attempt, c.opts.MaxReconnects)
		if err := c.Connect(); err == nil {
			return
		}
		delay *= 2
	}

	if c.opts.OnDisconnect != nil {
		c.opts.OnDisconnect(cause)
	}
}

func (c *Client) dispatch(data []byte) {
	var probe struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return
	}

	switch probe.Event {
	case ws.EventReceiveMessage:
		var event ws.ReceiveMessageEvent
		if err := json.Unmarshal(data, &event); err != nil || event.Message == nil {
			return
		}
		if c.opts.OnMessage != nil {
			c.opts.OnMessage(*event.Message)
		}

	case ws.EventMessageAck:
		var event ws.MessageAckEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return
		}
		c.mu.Lock()
		ch, ok := c.pending[event.AckID]
		delete(c.pending, event.AckID)
		c.mu.Unlock()
		if ok {
			ch <- event
		}

	case ws.EventTypingIndicator:
		var event ws.TypingIndicatorEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return
		}
		if c.opts.OnTyping != nil {
			c.opts.OnTyping(event)
		}

	case ws.EventActiveUsers:
		var event ws.ActiveUsersEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return
		}
		if c.opts.OnActiveUsers != nil {
			c.opts.OnActiveUsers(event.Users)
		}
	}
}

// JoinConversation opens a room; joining twice is harmless.
func (c *Client) JoinConversation(conversationID string) error {
	c.mu.Lock()
	c.joined[conversationID] = true
	c.mu.Unlock()
	return c.emit(ws.Envelope{Event: ws.EventJoinConversation, ConversationID: conversationID})
}

func (c *Client) LeaveConversation(conversationID string) error {
	c.mu.Lock()
	delete(c.joined, conversationID)
	c.mu.Unlock()
	return c.emit(ws.Envelope{Event: ws.EventLeaveConversation, ConversationID: conversationID})
}

// SendMessage submits a message and waits for the server acknowledgment.
// The returned message is the persisted copy; the caller should render
// from the receive_message broadcast, not from this return value. There
// is no automatic retry: ctx bounds the wait and the caller decides.
func (c *Client) SendMessage(ctx context.Context, conversationID, text string) (*models.Message, error) {
	ackID := uuid.NewString()
	ackCh := make(chan ws.MessageAckEvent, 1)

	c.mu.Lock()
	c.pending[ackID] = ackCh
	c.mu.Unlock()

	err := c.emit(ws.Envelope{
		Event:          ws.EventSendMessage,
		AckID:          ackID,
		ConversationID: conversationID,
		SenderID:       c.opts.UserID,
		SenderName:     c.opts.UserName,
		Text:           text,
	})
	if err != nil {
		c.mu.Lock()
		delete(c.pending, ackID)
		c.mu.Unlock()
		return nil, err
	}

	select {
	case ack := <-ackCh:
		if !ack.Success {
			return nil, ErrSendFailed
		}
		return ack.Message, nil
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, ackID)
		c.mu.Unlock()
		return nil, ctx.Err()
	}
}

// Typing signals a keystroke; the stop event follows automatically after
// the idle timeout unless another keystroke resets it.
func (c *Client) Typing(conversationID string) {
	c.typing.keystroke(conversationID, c.opts.UserName)
}

// Close shuts the client down for good; no reconnection follows.
func (c *Client) Close() error {
	close(c.done)
	c.typing.stopAll()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
