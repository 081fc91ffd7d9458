package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// GradeNotice is pushed to a student's open connection when a teacher posts
// or corrects marks for them.
type GradeNotice struct {
	UserID      uuid.UUID `json:"-"`
	Subject     string    `json:"subject"`
	Class       string    `json:"class"`
	GradeLetter string    `json:"grade_letter"`
	Performance float64   `json:"performance"`
	Status      string    `json:"status"` // "created" or "updated"
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *GradeNotice, 16)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case notice := <-Broadcast:
			clientsMu.RLock()
			conn, ok := clients[notice.UserID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(notice); err != nil {
				log.Printf("Error sending notice to client %s: %v", notice.UserID, err)
				conn.Close()
				clientsMu.Lock()
				delete(clients, notice.UserID)
				clientsMu.Unlock()
			}
		}
	}
}

// Notify queues a grade notice without blocking the request path when the
// hub is saturated or not running.
func Notify(notice *GradeNotice) {
	select {
	case Broadcast <- notice:
	default:
		log.Printf("Dropping grade notice for %s: hub not draining", notice.UserID)
	}
}
