package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sifan077/linkstore/internal/http/view"
)

// PageHandler serves the index document and the health probe.
type PageHandler struct {
	service   string
	indexHTML string
}

// NewPageHandler renders the index page once up front.
func NewPageHandler(serviceName string) (*PageHandler, error) {
	html, err := view.RenderIndexPage(view.IndexPageData{})
	if err != nil {
		return nil, err
	}
	return &PageHandler{service: serviceName, indexHTML: html}, nil
}

// Register wires page routes onto the provided router.
func (h *PageHandler) Register(router fiber.Router) {
	router.Get("/", h.Index)
	router.Get("/health", h.Health)
}

// Index serves the static index document.
func (h *PageHandler) Index(c *fiber.Ctx) error {
	return c.Type("html", "utf-8").SendString(h.indexHTML)
}

// Health reports that the process is up.
func (h *PageHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": h.service,
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
