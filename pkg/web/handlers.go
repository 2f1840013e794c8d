package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/command"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/hub"
)

// handleStatus returns the current task snapshot.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.task.Status())
}

// handleFollow requests following mode.
func (s *Server) handleFollow(c *fiber.Ctx) error {
	s.task.Push(command.FollowMe)
	return c.JSON(fiber.Map{"command": command.FollowMe.String()})
}

// handleStop requests a stop.
func (s *Server) handleStop(c *fiber.Ctx) error {
	s.task.Push(command.Stop)
	return c.JSON(fiber.Map{"command": command.Stop.String()})
}

// handleStatusWS streams status snapshots. The current snapshot is sent
// immediately so clients render without waiting for the next frame.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	c.WriteJSON(s.task.Status())
	hub.NewClient(s.statusHub, c).Run()
}

// handleCameraWS streams annotated camera frames as binary JPEG messages.
func (s *Server) handleCameraWS(c *websocket.Conn) {
	hub.NewClient(s.cameraHub, c).Run()
}
