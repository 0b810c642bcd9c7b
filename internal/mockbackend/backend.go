// Package mockbackend serves a fixed model catalog in the backend's /api/tags
// format. It backs the tests and the hidden mock-backend command.
package mockbackend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"modelswitch/pkg/types"
)

// Backend is a fake model server. Its behavior can be changed while serving.
type Backend struct {
	mu     sync.RWMutex
	models []types.Model
	status int
	raw    []byte
	delay  time.Duration
	hits   int
	log    zerolog.Logger
}

// New returns a Backend serving models.
func New(models []types.Model) *Backend {
	return &Backend{models: append([]types.Model(nil), models...), status: http.StatusOK, log: zerolog.Nop()}
}

// SetLogger installs a request logger.
func (b *Backend) SetLogger(l zerolog.Logger) { b.mu.Lock(); b.log = l; b.mu.Unlock() }

// FailWith makes /api/tags answer with status and a JSON error body.
func (b *Backend) FailWith(status int) { b.mu.Lock(); b.status = status; b.mu.Unlock() }

// SetRawBody makes /api/tags answer with body verbatim. nil restores normal output.
func (b *Backend) SetRawBody(body []byte) { b.mu.Lock(); b.raw = body; b.mu.Unlock() }

// SetDelay delays every /api/tags response.
func (b *Backend) SetDelay(d time.Duration) { b.mu.Lock(); b.delay = d; b.mu.Unlock() }

// Hits reports how many catalog requests were served.
func (b *Backend) Hits() int { b.mu.RLock(); defer b.mu.RUnlock(); return b.hits }

// Router returns the HTTP handler.
func (b *Backend) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("mock backend is running"))
	})
	r.Get("/api/tags", b.handleTags)
	return r
}

func (b *Backend) handleTags(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.hits++
	status, raw, delay, log := b.status, b.raw, b.delay, b.log
	models := append([]types.Model(nil), b.models...)
	b.mu.Unlock()

	log.Debug().Str("remote", r.RemoteAddr).Int("status", status).Msg("GET /api/tags")
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: http.StatusText(status), Code: status})
		return
	}
	if raw != nil {
		_, _ = w.Write(raw)
		return
	}
	if models == nil {
		models = []types.Model{}
	}
	_ = json.NewEncoder(w).Encode(types.TagsResponse{Models: models})
}

// LoadModels reads a catalog file. The file is YAML (JSON is accepted too) and
// holds either a bare list of models or an object with a models list.
func LoadModels(path string) ([]types.Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []types.Model
	if err := yaml.Unmarshal(b, &list); err == nil {
		return list, nil
	}
	var tr types.TagsResponse
	if err := yaml.Unmarshal(b, &tr); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tr.Models, nil
}

// ListenAndServe serves h on addr until ctx is canceled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, log zerolog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("mock backend listening")
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
