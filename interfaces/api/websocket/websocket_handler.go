package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	wsmanager "taskboard/infrastructure/websocket"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

type WebSocketHandler struct {
	manager *wsmanager.Manager
}

func NewWebSocketHandler(manager *wsmanager.Manager) *WebSocketHandler {
	return &WebSocketHandler{manager: manager}
}

// WebSocketUpgrade rejects plain HTTP requests and anonymous clients.
func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if _, err := utils.GetUserFromContext(c); err != nil {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}
	return c.Next()
}

// HandleWebSocket registers the connection in the room named by ?room=
// and serves client messages until the socket closes.
func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userID := uuid.Nil
	if user, ok := c.Locals("user").(*utils.UserContext); ok {
		userID = user.ID
	}

	rooms := []string{c.Query("room")}
	h.manager.RegisterClient(c, userID, rooms...)
	defer h.manager.UnregisterClient(c)

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("Websocket read ended", "user_id", userID, "error", err)
			return
		}
		h.manager.HandleClientMessage(c, message)
	}
}
