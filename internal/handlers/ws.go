package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/example/pinkbears/internal/realtime"
	"github.com/example/pinkbears/internal/services"
)

// WSHandler owns the bidirectional event connection. Clients subscribe to
// rooms (join_order, join_admin, customer_join) and send chat messages
// (send_message); the server pushes realtime.Event envelopes back.
type WSHandler struct {
	hub  *realtime.Hub
	chat *services.ChatService
}

// NewWSHandler constructs WSHandler.
func NewWSHandler(hub *realtime.Hub, chat *services.ChatService) *WSHandler {
	return &WSHandler{hub: hub, chat: chat}
}

type inboundMessage struct {
	Type        string `json:"type"`
	OrderID     uint   `json:"order_id"`
	Email       string `json:"email"`
	SenderType  string `json:"sender_type"`
	SenderEmail string `json:"sender_email"`
	Message     string `json:"message"`
}

// Upgrade gates the route to WebSocket upgrade requests.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve returns the connection handler.
func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(h.handle)
}

func (h *WSHandler) handle(conn *websocket.Conn) {
	client := h.hub.Register()
	defer h.hub.Unregister(client)

	// Writer pump: drains until Unregister closes the channel.
	go func() {
		for ev := range client.Events() {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}()

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "join_order":
			if msg.OrderID > 0 {
				h.hub.Join(client, realtime.OrderRoom(msg.OrderID))
			}
		case "join_admin":
			h.hub.Join(client, realtime.AdminRoom)
		case "customer_join":
			if msg.Email != "" {
				h.hub.Join(client, realtime.CustomerRoom(msg.Email))
			}
		case "send_message":
			if _, err := h.chat.PostMessage(msg.OrderID, msg.SenderType, msg.SenderEmail, msg.Message); err != nil {
				log.Printf("websocket send_message failed for order %d: %v", msg.OrderID, err)
			}
		default:
			log.Printf("websocket: unknown message type %q from client %s", msg.Type, client.ID)
		}
	}
}
