package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fixedCounter int

func (f fixedCounter) Len() int { return int(f) }

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.registry == nil {
		t.Error("registry field is nil")
	}
	if r.CommandsTotal == nil || r.CommandDuration == nil || r.InvalidFlows == nil {
		t.Error("command metrics should be initialised")
	}
}

func TestNewRegistry_Independent(t *testing.T) {
	// Two registries must not collide on registration.
	r1 := NewRegistry()
	r2 := NewRegistry()

	r1.ObserveCommand("GET", ResultOK, time.Millisecond)

	if got := testutil.ToFloat64(r2.CommandsTotal.WithLabelValues("GET", ResultOK)); got != 0 {
		t.Errorf("r2 commands_total = %v, want 0", got)
	}
}

func TestObserveCommand(t *testing.T) {
	r := NewRegistry()

	r.ObserveCommand("SET", ResultOK, 10*time.Microsecond)
	r.ObserveCommand("SET", ResultOK, 10*time.Microsecond)
	r.ObserveCommand("SET", ResultError, 10*time.Microsecond)

	if got := testutil.ToFloat64(r.CommandsTotal.WithLabelValues("SET", ResultOK)); got != 2 {
		t.Errorf("commands_total{SET,ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.CommandsTotal.WithLabelValues("SET", ResultError)); got != 1 {
		t.Errorf("commands_total{SET,error} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(r.CommandDuration); got != 1 {
		t.Errorf("command_duration_seconds series = %d, want 1", got)
	}
}

func TestObserveInvalidFlow(t *testing.T) {
	r := NewRegistry()
	r.ObserveInvalidFlow()

	if got := testutil.ToFloat64(r.InvalidFlows); got != 1 {
		t.Errorf("invalid_flows_total = %v, want 1", got)
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector(fixedCounter(7))

	expected := `
# HELP kyoto_keys Number of keys currently stored.
# TYPE kyoto_keys gauge
kyoto_keys 7
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected collector output: %v", err)
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(NewCollector(fixedCounter(3)))
	r.ObserveCommand("GET", ResultOK, time.Microsecond)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	out := string(body)

	for _, want := range []string{
		`kyoto_commands_total{command="GET",result="ok"} 1`,
		"kyoto_keys 3",
		"go_goroutines",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
