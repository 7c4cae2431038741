package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	core "github.com/kyoto-db/kyoto/internal/core/server"
	"github.com/kyoto-db/kyoto/internal/protocol"
	"github.com/kyoto-db/kyoto/internal/telemetry/logger"
)

func TestHandler_NotReady(t *testing.T) {
	h := New(nil, nil, logger.Nop())

	for _, path := range []string{"/readyz", "/info", "/stats"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("GET %s status = %d, want 503", path, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz status = %d, want 200", rec.Code)
	}
}

func TestHandler_Stats(t *testing.T) {
	srv, err := core.New(core.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("core.New() error = %v", err)
	}
	srv.Execute(protocol.Set{Key: "a", Value: []byte("1")})
	srv.Execute(protocol.Get{Key: "a"})
	srv.Execute(protocol.Get{Key: "b"})

	h := New(srv, nil, logger.Nop())
	req := httptest.NewRequest("GET", "/stats", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp struct {
		Code      string `json:"code"`
		RequestID string `json:"request_id"`
		Data      struct {
			TotalKeys int    `json:"total_keys"`
			Processed uint64 `json:"total_commands_processed"`
			Hits      uint64 `json:"keyspace_hits"`
			Misses    uint64 `json:"keyspace_misses"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Code != "OK" {
		t.Errorf("Code = %q, want OK", resp.Code)
	}
	if resp.RequestID != "req-1" {
		t.Errorf("RequestID = %q, want req-1", resp.RequestID)
	}
	if resp.Data.TotalKeys != 1 || resp.Data.Processed != 3 || resp.Data.Hits != 1 || resp.Data.Misses != 1 {
		t.Errorf("Data = %+v", resp.Data)
	}
}

func TestHandler_InfoContentType(t *testing.T) {
	srv, err := core.New(core.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("core.New() error = %v", err)
	}

	h := New(srv, nil, logger.Nop())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/info", nil))

	if got := rec.Header().Get("Content-Type"); got != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
}
