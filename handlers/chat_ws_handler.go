package handlers

import (
	"github.com/jkamau589/pet_haven/chat"
	"github.com/jkamau589/pet_haven/database"
	"github.com/jkamau589/pet_haven/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
)

var chatHub = websocket.NewHub()

// ServeWs hands a freshly upgraded connection to the realtime session
// loop. Identity arrives over the socket as a user_join event.
func ServeWs(c *websocketcontrib.Conn) {
	websocket.ServeConn(c, chatHub, chat.NewStore(database.DB))
}
