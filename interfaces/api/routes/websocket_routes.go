package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	wsmanager "taskboard/infrastructure/websocket"
	"taskboard/interfaces/api/middleware"
	websocketHandler "taskboard/interfaces/api/websocket"
)

func SetupWebSocketRoutes(app *fiber.App, manager *wsmanager.Manager, jwtSecret string) {
	wsHandler := websocketHandler.NewWebSocketHandler(manager)

	app.Use("/ws", middleware.Optional(jwtSecret), wsHandler.WebSocketUpgrade)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
