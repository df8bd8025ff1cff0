package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/sifan077/linkstore/config"
	"github.com/sifan077/linkstore/internal/app/model"
	"github.com/sifan077/linkstore/internal/app/repository"
	"github.com/sifan077/linkstore/internal/app/service"
	"github.com/sifan077/linkstore/internal/http/middleware"
	"github.com/sifan077/linkstore/internal/infra/prometheus"
	infraSQLite "github.com/sifan077/linkstore/internal/infra/sqlite"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := infraSQLite.NewGorm(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "data", "urls.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := infraSQLite.AutoMigrate(context.Background(), db, &model.Link{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	srv, err := New(Dependencies{
		Links:   service.NewLinkService(service.LinkServiceDeps{Links: repository.NewLinkRepository(db)}),
		Metrics: prometheus.NewMetrics(promclient.NewRegistry()),
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return srv
}

func TestServer_EndToEnd(t *testing.T) {
	srv := newTestServer(t)

	steps := []struct {
		method   string
		path     string
		body     string
		status   int
		wantBody string
		location string
	}{
		{http.MethodGet, "/", "", http.StatusOK, "", ""},
		{http.MethodPost, "/shorten", `{"url": "https://example.com/page"}`, http.StatusCreated, `{"short_id":1,"full_url":"https://example.com/page"}`, ""},
		{http.MethodGet, "/1", "", http.StatusFound, "", "https://example.com/page"},
		{http.MethodGet, "/stats/1", "", http.StatusOK, `{"short_id":1,"full_url":"https://example.com/page"}`, ""},
		{http.MethodGet, "/999", "", http.StatusNotFound, "", ""},
		{http.MethodPost, "/shorten", `{"url": "ftp://example.com"}`, http.StatusBadRequest, `{"error":"Invalid or missing 'url'"}`, ""},
		{http.MethodPost, "/shorten", "", http.StatusBadRequest, `{"error":"Invalid or missing 'url'"}`, ""},
		{http.MethodGet, "/health", "", http.StatusOK, "", ""},
	}

	for _, st := range steps {
		req := httptest.NewRequest(st.method, st.path, strings.NewReader(st.body))
		if st.method == http.MethodPost {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := srv.App().Test(req, -1)
		if err != nil {
			t.Fatalf("%s %s: %v", st.method, st.path, err)
		}
		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode != st.status {
			t.Fatalf("%s %s: expected %d, got %d (%s)", st.method, st.path, st.status, resp.StatusCode, body)
		}
		if st.wantBody != "" && string(body) != st.wantBody {
			t.Fatalf("%s %s: expected body %s, got %s", st.method, st.path, st.wantBody, body)
		}
		if st.location != "" && resp.Header.Get("Location") != st.location {
			t.Fatalf("%s %s: expected Location %q, got %q", st.method, st.path, st.location, resp.Header.Get("Location"))
		}
		if resp.Header.Get(middleware.RequestIDHeader) == "" {
			t.Fatalf("%s %s: expected request id header", st.method, st.path)
		}
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/not-a-number", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
