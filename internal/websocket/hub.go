package websocket

import "github.com/rs/zerolog/log"

// targetedMessage carries a payload destined for one user's clients.
type targetedMessage struct {
	userID  string
	message []byte
}

// Hub maintains the set of active clients and pushes activity messages to
// the clients belonging to a given user. All map access happens on the Run
// goroutine; registration, unregistration and broadcasts arrive over
// channels.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Targeted messages awaiting delivery.
	broadcasts chan targetedMessage

	// A map of user IDs to the set of that user's connected clients.
	subscriptions map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		broadcasts:    make(chan targetedMessage, 64),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client)
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case msg := <-h.broadcasts:
			h.deliver(msg)
		}
	}
}

// BroadcastTo queues a message for all clients belonging to a user. Safe to
// call from any goroutine; delivery happens on the Run goroutine.
func (h *Hub) BroadcastTo(userID string, message []byte) {
	h.broadcasts <- targetedMessage{userID: userID, message: message}
}

func (h *Hub) deliver(msg targetedMessage) {
	for client := range h.subscriptions[msg.userID] {
		select {
		case client.Send <- msg.message:
		default:
			close(client.Send)
			delete(h.clients, client)
			delete(h.subscriptions[msg.userID], client)
		}
	}
}

func (h *Hub) addSubscription(client *Client) {
	if h.subscriptions[client.UserID] == nil {
		h.subscriptions[client.UserID] = make(map[*Client]bool)
	}
	h.subscriptions[client.UserID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	if subs, ok := h.subscriptions[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, client.UserID)
		}
	}
}
