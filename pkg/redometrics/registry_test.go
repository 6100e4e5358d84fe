package redometrics

import "testing"

func TestRegistryCounterGetOrCreate(t *testing.T) {
	r := NewRegistry()
	c1 := r.Counter("a")
	c2 := r.Counter("a")
	if c1 != c2 {
		t.Fatal("expected the same Counter instance for a repeated name")
	}
	c1.Inc()
	if c2.Value() != 1 {
		t.Fatalf("expected shared counter to reflect the increment, got %d", c2.Value())
	}
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Counter("a").Add(3)
	r.Counter("b").Add(7)

	snap := r.Snapshot()
	if snap["a"] != 3 || snap["b"] != 7 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestSessionMetricsImplementsRedoMetrics(t *testing.T) {
	m := NewSessionMetrics()
	m.IncPositions()
	m.IncPositions()
	m.IncDropped()
	m.IncGrafts()
	m.IncCyclesSuppressed()
	m.IncChunksGrown()

	snap := m.Registry().Snapshot()
	if snap[MetricPositions] != 2 {
		t.Fatalf("expected 2 positions counted, got %d", snap[MetricPositions])
	}
	if snap[MetricDropped] != 1 || snap[MetricGrafts] != 1 || snap[MetricCyclesSuppressed] != 1 || snap[MetricChunksGrown] != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}
