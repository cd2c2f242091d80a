package websocket

// ConnWriter is the outbound half of a websocket connection. The hub only
// ever writes; keeping it an interface lets tests substitute fakes.
type ConnWriter interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client is one live connection. UserID stays empty until the connection
// identifies itself with a user_join event.
type Client struct {
	ID     string
	UserID string
	Conn   ConnWriter
}
