// Package api exposes the assistant over HTTP with fiber.
package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

// Assistant is the core surface the HTTP layer calls into.
type Assistant interface {
	Route(ctx context.Context, userID int64, message string) contractx.AgentResponse
	LookupOrders(ctx context.Context, userID int64) []contractx.Order
	Browse(ctx context.Context, q contractx.ProductQuery) []contractx.Product
}

type Server struct {
	app     *fiber.App
	cfg     Config
	started time.Time
}

// NewServer builds the fiber app. gatherer backs /metrics; nil falls back to
// the default prometheus registry.
func NewServer(cfg Config, assistant Assistant, gatherer prometheus.Gatherer) *Server {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})

	s := &Server{app: app, cfg: cfg, started: time.Now()}

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Output: log.Logger}))

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	app.Get("/health", s.health)

	h := newHandler(assistant)
	routes := app.Group("/api")
	routes.Post("/chat", h.chat)
	routes.Get("/orders/:userId", h.orders)
	routes.Get("/products", h.products)

	return s
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	log.Info().Str("component", "api").Str("addr", s.cfg.Addr).Msg("http server listening")
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}
