package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Liveness(t *testing.T) {
	e := newTestEcho()
	c, rec := jsonContext(e, http.MethodGet, "/health", "")

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	ok := pingFunc(func(ctx context.Context) error { return nil })
	down := pingFunc(func(ctx context.Context) error {
		return errors.New("dial tcp 10.0.0.7:6379: connection refused")
	})

	tests := []struct {
		name     string
		deps     map[string]Pinger
		wantCode int
	}{
		{name: "no dependencies", deps: nil, wantCode: http.StatusOK},
		{name: "all up", deps: map[string]Pinger{"mongodb": ok, "redis": ok}, wantCode: http.StatusOK},
		{name: "redis down", deps: map[string]Pinger{"mongodb": ok, "redis": down}, wantCode: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			c, rec := jsonContext(e, http.MethodGet, "/health/ready", "")

			if err := NewHealthDependenciesHandler(tc.deps, zerolog.Nop()).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if len(resp.Dependencies) != len(tc.deps) {
				t.Fatalf("expected %d dependencies, got %d", len(tc.deps), len(resp.Dependencies))
			}
			if body := rec.Body.String(); strings.Contains(body, "10.0.0.7") || strings.Contains(body, "refused") {
				t.Fatalf("dependency error leaked: %s", body)
			}
		})
	}
}
