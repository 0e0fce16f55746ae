// Package web exposes session lifecycle, frame and utterance ingest,
// snapshots, reports and live tick streaming over HTTP and websockets.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/huihuibuhui227-svg/JingXin/internal/log"
	"github.com/huihuibuhui227-svg/JingXin/pkg/hub"
	"github.com/huihuibuhui227-svg/JingXin/pkg/report"
	"github.com/huihuibuhui227-svg/JingXin/pkg/session"
)

// Server is the analysis service's HTTP and websocket frontend.
type Server struct {
	app  *fiber.App
	port string

	registry *session.Registry
	store    report.Store

	// hubs holds one broadcast hub per live session.
	hubsMu sync.Mutex
	hubs   map[string]*hub.Hub

	startedAt time.Time
}

// NewServer wires the routes around a session registry and report store.
func NewServer(port string, registry *session.Registry, store report.Store) *Server {
	s := &Server{
		port:      port,
		registry:  registry,
		store:     store,
		hubs:      make(map[string]*hub.Hub),
		startedAt: time.Now(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "JingXin Analysis",
		DisableStartupMessage: true,
	})

	app.Use(cors.New())

	app.Get("/health", s.handleHealth)

	api := app.Group("/api")
	api.Post("/sessions", s.handleCreateSession)
	api.Delete("/sessions/:id", s.handleEndSession)
	api.Post("/sessions/:id/frames", s.handleFrame)
	api.Post("/sessions/:id/utterances", s.handleUtterance)
	api.Get("/sessions/:id/state", s.handleState)
	api.Get("/reports", s.handleListReports)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/sessions/:id", websocket.New(s.handleSessionWS))

	s.app = app
	return s
}

// Start serves the API, blocking until shutdown.
func (s *Server) Start() error {
	log.Info("analysis service listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown stops the server and every session hub.
func (s *Server) Shutdown() error {
	s.hubsMu.Lock()
	for _, h := range s.hubs {
		h.Stop()
	}
	s.hubsMu.Unlock()
	return s.app.Shutdown()
}
