package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/huihuibuhui227-svg/JingXin/internal/log"
	"github.com/huihuibuhui227-svg/JingXin/pkg/hub"
	"github.com/huihuibuhui227-svg/JingXin/pkg/session"
	"github.com/huihuibuhui227-svg/JingXin/pkg/signal"
	"github.com/huihuibuhui227-svg/JingXin/pkg/voice"
)

// handleHealth reports liveness and the live session count.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"uptime":   time.Since(s.startedAt).String(),
		"sessions": s.registry.Len(),
	})
}

// handleCreateSession starts a session and its broadcast hub.
func (s *Server) handleCreateSession(c *fiber.Ctx) error {
	sess, err := s.registry.Create()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	h := hub.New(sess.ID())
	go h.Run()
	s.hubsMu.Lock()
	s.hubs[sess.ID()] = h
	s.hubsMu.Unlock()

	sess.OnTick(func(rec session.TickRecord) {
		h.BroadcastJSON(rec)
	})

	log.Info("session created", "session", sess.ID())
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session_id": sess.ID()})
}

// handleEndSession finalizes a session, persists its report and tears
// down its hub.
func (s *Server) handleEndSession(c *fiber.Ctx) error {
	id := c.Params("id")

	rep, ok := s.registry.Remove(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	s.hubsMu.Lock()
	h := s.hubs[id]
	delete(s.hubs, id)
	s.hubsMu.Unlock()
	if h != nil {
		h.Stop()
	}

	if err := s.store.Save(rep); err != nil {
		log.Error("persist report", "session", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "report not persisted"})
	}

	log.Info("session ended", "session", id, "ticks", rep.Ticks)
	return c.JSON(rep)
}

// handleFrame ingests one perception frame and returns its tick record.
func (s *Server) handleFrame(c *fiber.Ctx) error {
	sess, ok := s.registry.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	var frame signal.Frame
	if err := c.BodyParser(&frame); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid frame body"})
	}

	rec, err := sess.HandleFrame(frame)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rec)
}

// handleUtterance ingests one utterance's prosody features and returns
// the voice assessment.
func (s *Server) handleUtterance(c *fiber.Ctx) error {
	sess, ok := s.registry.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	var features voice.Features
	if err := c.BodyParser(&features); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid utterance body"})
	}
	return c.JSON(sess.HandleUtterance(features))
}

// handleState returns the latest tick record.
func (s *Server) handleState(c *fiber.Ctx) error {
	sess, ok := s.registry.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	return c.JSON(sess.Snapshot())
}

// handleListReports returns stored reports, newest first.
func (s *Server) handleListReports(c *fiber.Ctx) error {
	reports, err := s.store.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reports)
}

// handleSessionWS subscribes a websocket to a session's tick stream.
func (s *Server) handleSessionWS(c *websocket.Conn) {
	id := c.Params("id")

	s.hubsMu.Lock()
	h, ok := s.hubs[id]
	s.hubsMu.Unlock()
	if !ok {
		c.WriteJSON(fiber.Map{"error": "session not found"})
		c.Close()
		return
	}

	hub.NewClient(h, c).Run()
}
