// Package web serves the follow-system dashboard: a JSON status API,
// command endpoints, and websocket streams for live status and the
// annotated camera feed.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/follow"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/hub"
)

// Server exposes the follow task over HTTP and websockets. It never touches
// task internals directly: reads go through the status snapshot and writes
// through the command channel.
type Server struct {
	app  *fiber.App
	port string
	task *follow.Task

	statusHub *hub.Hub
	cameraHub *hub.Hub
}

// NewServer creates the dashboard server for a follow task.
func NewServer(port string, task *follow.Task) *Server {
	s := &Server{
		port:      port,
		task:      task,
		statusHub: hub.New("status"),
		cameraHub: hub.New("camera"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Follow Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static files
	app.Static("/", "./web")

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Post("/follow", s.handleFollow)
	api.Post("/stop", s.handleStop)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))

	s.app = app
	return s
}

// Start runs the hubs and blocks serving HTTP.
func (s *Server) Start() error {
	log.Info("dashboard listening", "addr", "http://localhost:"+s.port)

	go s.statusHub.Run()
	go s.cameraHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server stopped", "error", err)
		}
	}()
}

// PublishStatus broadcasts a status snapshot to websocket clients.
func (s *Server) PublishStatus(status follow.Status) {
	s.statusHub.BroadcastJSON(status)
}

// PublishFrame broadcasts a JPEG frame to camera websocket clients. Frames
// are only encoded onto the wire when someone is watching.
func (s *Server) PublishFrame(jpeg []byte) {
	if s.cameraHub.ClientCount() == 0 {
		return
	}
	s.cameraHub.BroadcastBinary(jpeg)
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
