package live

import (
	"log"
	"net/http"

	"staysphere/store"
	"staysphere/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	// any origin, same as the REST API
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RoomUpdates serves GET /ws/rooms/:id.
func RoomUpdates(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id := ps.ByName("id")
		if _, err := store.ParseID(id); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid room id")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("[live] upgrade:", err)
			return
		}

		client := &Client{Send: make(chan []byte, 16), Room: id}
		if !hub.Register(client) {
			conn.Close()
			return
		}

		go writePump(conn, client)
		readPump(conn, hub, client)
	}
}

func writePump(conn *websocket.Conn, c *Client) {
	defer conn.Close()
	for msg := range c.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump discards client messages and unregisters on disconnect.
func readPump(conn *websocket.Conn, hub *Hub, c *Client) {
	defer func() {
		hub.Unregister(c)
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
