package server

import (
	"encoding/json"
	"log"

	"simonev/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// NotificationSocketHandler upgrades the connection and streams the caller's
// realtime notifications. Requires WebSocketAuthRequired to have stored the
// user ID in locals.
func (s *Server) NotificationSocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			log.Printf("WebSocket: unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket: failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		// The stream is one-way; the only accepted client message is a ping.
		client.IncomingHandler = func(c *notifications.Client, message []byte) {
			var msg map[string]interface{}
			if err := json.Unmarshal(message, &msg); err != nil {
				return
			}
			if msgType, ok := msg["type"].(string); ok && msgType == "ping" {
				c.TrySend([]byte(`{"type":"pong"}`))
			}
		}

		go client.WritePump()
		client.ReadPump()
	})
}
