// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the question pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/dataqa/internal/metrics"
)

// Answerer answers one question, returning a human-readable string for
// every input.
type Answerer interface {
	Answer(ctx context.Context, question string) string
}

// Server wires the pipeline into a Fiber app.
type Server struct {
	app      *fiber.App
	pipeline Answerer
}

// New builds the app with its routes and middleware.
func New(pipeline Answerer) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{app: app, pipeline: pipeline}

	app.Post("/chat", s.handleChat)
	app.Get("/healthz", s.handleHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return s
}

// App returns the underlying Fiber app, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// handleChat runs one question through the pipeline. Every well-formed
// request gets HTTP 200; logical failures come back as answer text.
func (s *Server) handleChat(c fiber.Ctx) error {
	var body struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	start := time.Now()
	answer := s.pipeline.Answer(c.Context(), body.Question)
	metrics.ObserveQuestionDuration(time.Since(start))

	return c.JSON(fiber.Map{"answer": answer})
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}
