package handler

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestPageHandler_Index(t *testing.T) {
	h, err := NewPageHandler("linkstore")
	if err != nil {
		t.Fatalf("NewPageHandler returned error: %v", err)
	}
	app := fiber.New()
	h.Register(app)

	resp, body := get(t, app, "/")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}
	if !strings.Contains(body, "<form") {
		t.Fatalf("expected index form in body")
	}
}

func TestPageHandler_Health(t *testing.T) {
	h, err := NewPageHandler("linkstore")
	if err != nil {
		t.Fatalf("NewPageHandler returned error: %v", err)
	}
	app := fiber.New()
	h.Register(app)

	resp, body := get(t, app, "/health")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["service"] != "linkstore" || payload["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", payload)
	}
}
