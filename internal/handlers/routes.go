package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func Register(app *fiber.App, h *Handler, ws *WebSocketHandler) {
	app.Get("/", h.LandingPage)
	app.Get("/health", h.Health)
	app.Post("/api/polls", h.CreatePoll)
	app.Get("/api/polls/:id", h.GetPoll)

	// WebSocket route
	app.Get("/ws", ws.WebSocketMiddleware, websocket.New(ws.HandleWebSocket))
}
