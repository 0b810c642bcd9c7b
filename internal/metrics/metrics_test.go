package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"modelswitch/pkg/types"
)

func TestRecorderCounters(t *testing.T) {
	r := New()
	r.ObserveFetch(120*time.Millisecond, 3)
	r.FetchFailed("unreachable")
	r.Rejected(ReasonNonNumeric)
	r.Rejected(ReasonNonNumeric)
	r.Rejected(ReasonOutOfRange)
	r.Selected([]types.Frontend{types.FrontendGoose, types.FrontendOpenHands})

	if got := testutil.ToFloat64(r.catalogModels); got != 3 {
		t.Fatalf("models gauge = %v", got)
	}
	if got := testutil.ToFloat64(r.fetchErrors.WithLabelValues("unreachable")); got != 1 {
		t.Fatalf("fetch errors = %v", got)
	}
	if got := testutil.ToFloat64(r.rejected.WithLabelValues(ReasonNonNumeric)); got != 2 {
		t.Fatalf("non_numeric = %v", got)
	}
	if got := testutil.ToFloat64(r.rejected.WithLabelValues(ReasonOutOfRange)); got != 1 {
		t.Fatalf("out_of_range = %v", got)
	}
	if got := testutil.ToFloat64(r.selections.WithLabelValues("goose")); got != 1 {
		t.Fatalf("goose selections = %v", got)
	}
	if n := testutil.CollectAndCount(r.fetchDuration); n != 1 {
		t.Fatalf("histogram series = %d", n)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.ObserveFetch(time.Second, 1)
	r.FetchFailed("x")
	r.Rejected("x")
	r.Selected([]types.Frontend{types.FrontendAll})
	if err := r.WriteTextfile("/nonexistent/dir/m.prom"); err != nil {
		t.Fatalf("nil recorder should not write: %v", err)
	}
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.Selected([]types.Frontend{types.FrontendAll})
	p := filepath.Join(t.TempDir(), "modelswitch.prom")
	if err := r.WriteTextfile(p); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), `modelswitch_selections_total{target="all"} 1`) {
		t.Fatalf("unexpected textfile:\n%s", b)
	}
}
