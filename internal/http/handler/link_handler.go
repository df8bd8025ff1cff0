package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sifan077/linkstore/internal/app/model"
	"github.com/sifan077/linkstore/internal/app/repository"
	"github.com/sifan077/linkstore/internal/app/service"
	"github.com/sifan077/linkstore/internal/http/middleware"
	"github.com/sifan077/linkstore/internal/infra/prometheus"
	"go.uber.org/zap"
)

const (
	invalidURLMessage = "Invalid or missing 'url'"
	notFoundMessage   = "short link not found"
	internalMessage   = "internal server error"

	// shortIDRoute only matches plain ASCII digits. Signs, decimals and other
	// text never reach the handlers.
	shortIDRoute = ":short_id<regex(^[0-9]+$)>"
)

// LinkDeps groups dependencies required by link handlers.
type LinkDeps struct {
	Logger  *zap.Logger
	Links   service.LinkService
	Metrics *prometheus.Metrics
}

// LinkHandler implements shorten, redirect and stats.
type LinkHandler struct {
	logger  *zap.Logger
	links   service.LinkService
	metrics *prometheus.Metrics
}

// NewLinkHandler creates a link handler with the provided dependencies.
func NewLinkHandler(deps LinkDeps) *LinkHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinkHandler{
		logger:  logger,
		links:   deps.Links,
		metrics: deps.Metrics,
	}
}

// Register wires link routes onto the provided router.
func (h *LinkHandler) Register(router fiber.Router) {
	router.Post("/shorten", h.Shorten)
	router.Get("/stats/"+shortIDRoute, h.Stats)
	router.Get("/"+shortIDRoute, h.Resolve)
}

// ShortenRequest is the body of POST /shorten.
type ShortenRequest struct {
	URL any `json:"url"`
}

// LinkResponse is returned by shorten and stats.
type LinkResponse struct {
	ShortID int64  `json:"short_id"`
	FullURL string `json:"full_url"`
}

func newLinkResponse(link *model.Link) LinkResponse {
	return LinkResponse{ShortID: link.ShortID, FullURL: link.FullURL}
}

// Shorten handles POST /shorten
func (h *LinkHandler) Shorten(c *fiber.Ctx) error {
	link, err := h.links.Shorten(requestContext(c), parseShortenURL(c))
	if err != nil {
		if errors.Is(err, service.ErrInvalidURL) {
			h.metrics.ShortenRejected()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": invalidURLMessage,
			})
		}
		h.logger.Error("failed to create link",
			zap.Error(err),
			zap.String("request_id", middleware.GetRequestID(c)))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": internalMessage,
		})
	}

	h.metrics.LinkCreated()
	return c.Status(fiber.StatusCreated).JSON(newLinkResponse(link))
}

// parseShortenURL extracts "url" from a JSON body. Anything that is not a JSON
// object with a string "url" yields "", which validation then rejects.
func parseShortenURL(c *fiber.Ctx) string {
	body := c.Body()
	if len(body) == 0 || !isJSONContentType(c.Get(fiber.HeaderContentType)) {
		return ""
	}

	var req ShortenRequest
	if err := c.App().Config().JSONDecoder(body, &req); err != nil {
		return ""
	}
	raw, _ := req.URL.(string)
	return raw
}

// isJSONContentType accepts application/json and application/*+json,
// ignoring parameters such as charset.
func isJSONContentType(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType == fiber.MIMEApplicationJSON {
		return true
	}
	return strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json")
}

// Resolve handles GET /:short_id
func (h *LinkHandler) Resolve(c *fiber.Ctx) error {
	link, loadErr := h.loadLink(c, prometheus.OpResolve)
	if loadErr != nil {
		return c.Status(loadErr.StatusCode).JSON(fiber.Map{
			"error": loadErr.Message,
		})
	}

	h.logger.Debug("redirecting short link",
		zap.Int64("short_id", link.ShortID),
		zap.String("target", link.FullURL))
	return c.Redirect(link.FullURL, fiber.StatusFound)
}

// Stats handles GET /stats/:short_id
func (h *LinkHandler) Stats(c *fiber.Ctx) error {
	link, loadErr := h.loadLink(c, prometheus.OpStats)
	if loadErr != nil {
		return c.Status(loadErr.StatusCode).JSON(fiber.Map{
			"error": loadErr.Message,
		})
	}

	return c.JSON(newLinkResponse(link))
}

type linkLoadError struct {
	StatusCode int
	Message    string
}

func (h *LinkHandler) loadLink(c *fiber.Ctx, op string) (*model.Link, *linkLoadError) {
	shortID, err := c.ParamsInt("short_id")
	if err != nil || shortID < 0 {
		h.metrics.Lookup(op, prometheus.ResultMiss)
		return nil, &linkLoadError{StatusCode: fiber.StatusNotFound, Message: notFoundMessage}
	}

	link, err := h.links.Lookup(requestContext(c), int64(shortID))
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			h.metrics.Lookup(op, prometheus.ResultMiss)
			return nil, &linkLoadError{StatusCode: fiber.StatusNotFound, Message: notFoundMessage}
		}
		h.metrics.Lookup(op, prometheus.ResultError)
		h.logger.Error("failed to load link",
			zap.Error(err),
			zap.Int("short_id", shortID),
			zap.String("request_id", middleware.GetRequestID(c)))
		return nil, &linkLoadError{StatusCode: fiber.StatusInternalServerError, Message: internalMessage}
	}

	h.metrics.Lookup(op, prometheus.ResultHit)
	return link, nil
}

func requestContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
