package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Config holds the HTTP transport settings.
type Config struct {
	Port string
}

// Server exposes the conversational turn interface over HTTP.
type Server struct {
	app    *fiber.App
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, manager *Manager, log *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(recover.New())

	handler := &sessionHandler{manager: manager, logger: log}
	handler.RegisterRoutes(app.Group("/api"))

	return &Server{
		app:    app,
		cfg:    cfg,
		logger: log,
	}
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Run() error {
	s.logger.Info("starting http transport", zap.String("port", s.cfg.Port))
	return s.app.Listen(":" + s.cfg.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

type sessionHandler struct {
	manager *Manager
	logger  *zap.Logger
}

func (h *sessionHandler) RegisterRoutes(api fiber.Router) {
	api.Post("/sessions", h.createSession)
	api.Post("/sessions/:id/turns", h.postTurn)
	api.Get("/sessions/:id/transcript", h.getTranscript)
}

type turnRequest struct {
	Text string `json:"text"`
}

func (h *sessionHandler) createSession(c *fiber.Ctx) error {
	id, greeting := h.manager.Create()

	h.logger.Info("session created", zap.String("session_id", id))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": id,
		"greeting":   greeting,
	})
}

func (h *sessionHandler) postTurn(c *fiber.Ctx) error {
	var req turnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	reply, phase, err := h.manager.Turn(c.Context(), c.Params("id"), req.Text)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	case errors.Is(err, ErrSessionClosed):
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": "session already closed"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	return c.JSON(fiber.Map{
		"reply":  reply.Text,
		"closed": reply.Closed,
		"phase":  phase.String(),
	})
}

func (h *sessionHandler) getTranscript(c *fiber.Ctx) error {
	transcript, err := h.manager.Transcript(c.Params("id"))
	if errors.Is(err, ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	return c.JSON(fiber.Map{"turns": transcript})
}
