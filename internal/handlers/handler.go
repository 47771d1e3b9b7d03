package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/latestcomment/livepoll/internal/models"
	"github.com/latestcomment/livepoll/internal/services"
)

type Handler struct {
	Service *services.PollService
}

func NewHandler(s *services.PollService) *Handler {
	return &Handler{Service: s}
}

// LandingPage lists sessions that currently have a presenter.
func (h *Handler) LandingPage(c *fiber.Ctx) error {
	var live []models.SessionSummary
	for _, s := range h.Service.Summaries() {
		if s.HasPresenter {
			live = append(live, s)
		}
	}
	return c.Render("index", fiber.Map{
		"Sessions": live,
		"Waiting":  h.Service.PendingCount(),
	})
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

// CreatePoll handles POST /api/polls
func (h *Handler) CreatePoll(c *fiber.Ctx) error {
	session := h.Service.CreateSession()
	return c.JSON(fiber.Map{"pollId": session.Id})
}

// GetPoll handles GET /api/polls/:id
func (h *Handler) GetPoll(c *fiber.Ctx) error {
	summary, ok := h.Service.Summary(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Poll not found")
	}
	return c.JSON(summary)
}
