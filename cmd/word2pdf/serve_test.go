package main

// Notes:
// - serveHTTP is driven on a loopback listener; canceling the context must
//   drain and return nil.
// - runServe is only exercised up to validation so no port is bound.

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/alnah/go-word2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestServeHTTP - Lifecycle
// ---------------------------------------------------------------------------

func TestServeHTTP(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	srv, err := buildServer(cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("buildServer() error = %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		hs := &http.Server{Handler: srv.Handler(), ReadHeaderTimeout: readHeaderTimeout}
		done <- serveHTTP(ctx, hs, ln, time.Second, slog.New(slog.DiscardHandler))
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		cancel()
		t.Fatalf("GET /healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, body %s", resp.StatusCode, body)
	}
	var health map[string]any
	if err := json.Unmarshal(body, &health); err != nil || health["status"] != "ok" {
		t.Errorf("health = %s (%v)", body, err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serveHTTP() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serveHTTP did not return after cancel")
	}
}

// ---------------------------------------------------------------------------
// TestBuildServer - Wiring errors
// ---------------------------------------------------------------------------

func TestBuildServer(t *testing.T) {
	t.Parallel()

	t.Run("applies limits", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Server.MaxConcurrent = 3
		srv, err := buildServer(cfg, nil)
		if err != nil {
			t.Fatal(err)
		}
		if srv.Concurrency() != 3 {
			t.Errorf("Concurrency() = %d, want 3", srv.Concurrency())
		}
	})

	t.Run("missing asset path", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Server.AssetPath = "/nonexistent/word2pdf-assets"
		if _, err := buildServer(cfg, nil); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("bad engine", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Conversion.Engine = "pandoc"
		if _, err := buildServer(cfg, nil); err == nil {
			t.Error("expected error")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunServe - Validation before listening
// ---------------------------------------------------------------------------

func TestRunServe_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"zero request timeout", []string{"--request-timeout", "0s"}, ExitUsage},
		{"negative concurrency", []string{"--max-concurrent", "-1"}, ExitUsage},
		{"bad log level", []string{"--log-level", "loud"}, ExitUsage},
		{"positional argument", []string{"docs"}, ExitUsage},
		{"missing config", []string{"--config", "/nonexistent/word2pdf.yaml"}, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := testEnv()
			err := runServe(context.Background(), tt.args, env)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := exitCodeFor(err); got != tt.wantCode {
				t.Errorf("exit code = %d, want %d (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}
