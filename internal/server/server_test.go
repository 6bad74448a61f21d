package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backuplens/internal/config"
)

func TestServer_Routes(t *testing.T) {
	cfg := config.DefaultConfig()
	srv := NewServer(cfg)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz code = %d", w.Code)
	}

	// API 已挂载：空会话下 status 正常返回
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "initialized") {
		t.Fatalf("status body = %s", w.Body.String())
	}

	// 未知路径返回 JSON 404
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no/such/path", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("404 code = %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		t.Fatalf("404 content type = %s", w.Header().Get("Content-Type"))
	}

	if srv.GetStore() == nil {
		t.Fatalf("store not wired")
	}
}
