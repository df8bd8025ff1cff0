package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sifan077/linkstore/internal/app/service"
	inthttp "github.com/sifan077/linkstore/internal/http/handler"
	"github.com/sifan077/linkstore/internal/http/middleware"
	"github.com/sifan077/linkstore/internal/infra/prometheus"
	"go.uber.org/zap"
)

const serviceName = "linkstore"

// Dependencies bundles what the HTTP server needs to serve requests.
type Dependencies struct {
	Logger  *zap.Logger
	Links   service.LinkService
	Metrics *prometheus.Metrics
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
}

// New creates the HTTP server with middleware and routes registered.
func New(deps Dependencies) (*Server, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
	})

	s := &Server{
		app:  app,
		deps: deps,
	}

	s.registerMiddleware()
	if err := s.registerRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// App exposes the underlying Fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerMiddleware() {
	s.app.Use(
		middleware.RequestID(),
		middleware.Logger(s.deps.Logger),
		middleware.Recovery(s.deps.Logger),
	)
}

func (s *Server) registerRoutes() error {
	pages, err := inthttp.NewPageHandler(serviceName)
	if err != nil {
		return err
	}
	pages.Register(s.app)

	links := inthttp.NewLinkHandler(inthttp.LinkDeps{
		Logger:  s.deps.Logger,
		Links:   s.deps.Links,
		Metrics: s.deps.Metrics,
	})
	links.Register(s.app)
	return nil
}
