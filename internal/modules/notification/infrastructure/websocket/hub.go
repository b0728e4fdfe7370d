package websocket

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

type UnicastMessage struct {
	UserID  uuid.UUID
	Message []byte
}

// Hub maintains the set of active clients and broadcasts messages to them.
// All client-map mutation happens on the Run goroutine.
type Hub struct {
	clients map[*Client]bool

	broadcast  chan []byte
	unicast    chan UnicastMessage
	register   chan *Client
	unregister chan *Client

	stop     chan struct{}
	stopOnce sync.Once
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		unicast:    make(chan UnicastMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		stop:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		case msg := <-h.unicast:
			for client := range h.clients {
				if client.userID == msg.UserID {
					select {
					case client.send <- msg.Message:
					default:
						close(client.send)
						delete(h.clients, client)
					}
				}
			}
		case <-h.stop:
			log.Println("[WebSocket Hub] Stopping hub")
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		}
	}
}

// BroadcastMessage sends a message to every connected client
func (h *Hub) BroadcastMessage(message []byte) {
	select {
	case h.broadcast <- message:
	case <-h.stop:
	}
}

// SendToUser sends a message to every connection of one user
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	select {
	case h.unicast <- UnicastMessage{UserID: userID, Message: message}:
	case <-h.stop:
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}
