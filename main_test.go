package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cosmocast/internal/config"
	"cosmocast/internal/observability"
	"cosmocast/internal/server"
)

func TestHealthEndpoint(t *testing.T) {
	cfg := &config.Config{
		Port:         "8080",
		NASAAPIKey:   "test-key",
		DONKIBaseURL: "http://localhost:0/DONKI",
		CacheTTL:     5 * time.Minute,
		Environment:  "test",
	}

	srv := server.NewServer(cfg, nil, observability.NewMetricsForTesting())
	mux := srv.SetupRoutes()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}

	if !strings.Contains(rr.Body.String(), "healthy") {
		t.Errorf("handler returned unexpected body: got %v", rr.Body.String())
	}
}

func TestRouteRegistration(t *testing.T) {
	cfg := &config.Config{
		Port:         "8080",
		NASAAPIKey:   "test-key",
		DONKIBaseURL: "http://localhost:0/DONKI",
		CacheTTL:     5 * time.Minute,
		Environment:  "test",
	}

	srv := server.NewServer(cfg, nil, observability.NewMetricsForTesting())
	mux := srv.SetupRoutes()

	// Registered paths must not fall through to the root 404
	for _, path := range []string{"/health", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		if rr.Code == http.StatusNotFound {
			t.Errorf("expected %s to be registered, got 404", path)
		}
	}
}

func TestConfigLoad(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port == "" {
		t.Error("Expected default port to be set")
	}
	if cfg.DONKIBaseURL == "" {
		t.Error("Expected default DONKI base URL to be set")
	}
}
