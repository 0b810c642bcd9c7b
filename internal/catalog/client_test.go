package catalog

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"modelswitch/internal/metrics"
	"modelswitch/internal/mockbackend"
	"modelswitch/pkg/types"
)

func startBackend(t *testing.T, models []types.Model) (*mockbackend.Backend, *httptest.Server) {
	t.Helper()
	b := mockbackend.New(models)
	srv := httptest.NewServer(b.Router())
	t.Cleanup(srv.Close)
	return b, srv
}

func TestFetchSortsByName(t *testing.T) {
	_, srv := startBackend(t, []types.Model{
		{Name: "qwen3:14b", Size: 9_000_000_000},
		{Name: "llama3.1:8b", Size: 4_900_000_000},
		{Name: "gemma3:4b", Size: 3_300_000_000},
	})
	c := New(srv.URL+"/", time.Second)
	models, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	got := []string{models[0].Name, models[1].Name, models[2].Name}
	want := []string{"gemma3:4b", "llama3.1:8b", "qwen3:14b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if c.BaseURL() != srv.URL {
		t.Fatalf("trailing slash not trimmed: %q", c.BaseURL())
	}
}

func TestFetchMissingSizeIsZero(t *testing.T) {
	b, srv := startBackend(t, nil)
	b.SetRawBody([]byte(`{"models":[{"name":"tiny"}]}`))
	models, err := New(srv.URL, time.Second).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(models) != 1 || models[0].Size != 0 {
		t.Fatalf("unexpected: %+v", models)
	}
}

func TestFetchEmptyCatalog(t *testing.T) {
	_, srv := startBackend(t, nil)
	rec := metrics.New()
	_, err := New(srv.URL, time.Second, WithMetrics(rec)).Fetch(context.Background())
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
	if errors.Is(err, ErrBackendUnreachable) {
		t.Fatalf("empty catalog must not look unreachable")
	}
	if !strings.Contains(err.Error(), "no models found") {
		t.Fatalf("message: %v", err)
	}
}

func TestFetchUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	url := "http://" + ln.Addr().String()
	_ = ln.Close()

	rec := metrics.New()
	_, err = New(url, time.Second, WithMetrics(rec)).Fetch(context.Background())
	if !errors.Is(err, ErrBackendUnreachable) {
		t.Fatalf("expected ErrBackendUnreachable, got %v", err)
	}
	if !strings.Contains(err.Error(), url) {
		t.Fatalf("error should name %s: %v", url, err)
	}
	var ce *Error
	if !errors.As(err, &ce) || ce.URL != url || ce.Kind != KindUnreachable {
		t.Fatalf("unexpected error value: %#v", err)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	b, srv := startBackend(t, []types.Model{{Name: "a"}})
	b.FailWith(http.StatusInternalServerError)
	_, err := New(srv.URL, time.Second).Fetch(context.Background())
	if !errors.Is(err, ErrBackendUnreachable) {
		t.Fatalf("expected ErrBackendUnreachable, got %v", err)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Fatalf("status missing from %v", err)
	}
}

func TestFetchEmptyBody(t *testing.T) {
	b, srv := startBackend(t, nil)
	b.SetRawBody([]byte("  \n"))
	_, err := New(srv.URL, time.Second).Fetch(context.Background())
	if !errors.Is(err, ErrBackendUnreachable) {
		t.Fatalf("expected ErrBackendUnreachable, got %v", err)
	}
}

func TestFetchTimeout(t *testing.T) {
	b, srv := startBackend(t, []types.Model{{Name: "slow"}})
	b.SetDelay(2 * time.Second)
	start := time.Now()
	_, err := New(srv.URL, 100*time.Millisecond).Fetch(context.Background())
	if !errors.Is(err, ErrBackendUnreachable) {
		t.Fatalf("expected ErrBackendUnreachable, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("timeout not honored")
	}
}

func TestFetchMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":      "<html>hi</html>",
		"missing field": `{"tags":[]}`,
		"wrong shape":   `{"models":{"name":"x"}}`,
		"nameless":      `{"models":[{"size":1}]}`,
	}
	for name, body := range cases {
		b, srv := startBackend(t, nil)
		b.SetRawBody([]byte(body))
		rec := metrics.New()
		_, err := New(srv.URL, time.Second, WithMetrics(rec)).Fetch(context.Background())
		if !errors.Is(err, ErrMalformedCatalog) {
			t.Fatalf("%s: expected ErrMalformedCatalog, got %v", name, err)
		}
		if !strings.Contains(err.Error(), srv.URL) {
			t.Fatalf("%s: error should name the backend: %v", name, err)
		}
		n, gerr := testutil.GatherAndCount(rec.Gatherer(), "modelswitch_catalog_fetch_errors_total")
		if gerr != nil || n != 1 {
			t.Fatalf("%s: expected one error series, got %d (%v)", name, n, gerr)
		}
	}
}

func TestFetchOversizedBody(t *testing.T) {
	b, srv := startBackend(t, nil)
	body := `{"models":[{"name":"` + strings.Repeat("x", maxBodyBytes) + `"}]}`
	b.SetRawBody([]byte(body))
	_, err := New(srv.URL, 5*time.Second).Fetch(context.Background())
	if !errors.Is(err, ErrMalformedCatalog) {
		t.Fatalf("expected ErrMalformedCatalog, got %v", err)
	}
	if !strings.Contains(err.Error(), "exceeds 8 MiB") {
		t.Fatalf("error should name the size limit: %v", err)
	}
}

func TestFetchSingleRequest(t *testing.T) {
	b, srv := startBackend(t, []types.Model{{Name: "a"}, {Name: "b"}})
	if _, err := New(srv.URL, time.Second).Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if b.Hits() != 1 {
		t.Fatalf("expected exactly one request, got %d", b.Hits())
	}
}
