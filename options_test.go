package roi

import (
	"testing"
)

func applyOptions(opts ...QueryOption) queryConfig {
	cfg := defaultQueryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func TestDefaultQueryConfig(t *testing.T) {
	cfg := defaultQueryConfig()
	if cfg.workers != 0 {
		t.Errorf("workers = %d, want 0 (resolved at query time)", cfg.workers)
	}
	if cfg.stats != nil {
		t.Error("stats attached by default")
	}
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"serial", 1, 1},
		{"capped", 4, 4},
		{"zero restores default", 0, 0},
		{"negative restores default", -3, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := applyOptions(WithWorkers(tt.n))
			if cfg.workers != tt.want {
				t.Errorf("workers = %d, want %d", cfg.workers, tt.want)
			}
		})
	}
}

func TestWithStats(t *testing.T) {
	var stats QueryStats
	cfg := applyOptions(WithStats(&stats))
	if cfg.stats != &stats {
		t.Error("stats not attached")
	}
}

func TestOptionsCombine(t *testing.T) {
	var stats QueryStats
	cfg := applyOptions(WithWorkers(2), WithStats(&stats))
	if cfg.workers != 2 {
		t.Errorf("workers = %d, want 2", cfg.workers)
	}
	if cfg.stats != &stats {
		t.Error("stats not attached")
	}
}

func TestQueryStatsAccumulateAcrossQueries(t *testing.T) {
	square := MultiPolygon{{Exterior: Ring{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4)}}}
	q := PixelQuery{Width: 4, Height: 4, Transform: Identity()}

	var stats QueryStats
	if _, err := Membership(square, q, q.FullRect(), WithWorkers(1), WithStats(&stats)); err != nil {
		t.Fatalf("Membership() = %v", err)
	}
	first := stats.Rects.Load()
	if first == 0 {
		t.Fatal("no rectangles counted")
	}
	if _, err := Membership(square, q, q.FullRect(), WithWorkers(1), WithStats(&stats)); err != nil {
		t.Fatalf("Membership() = %v", err)
	}
	if got := stats.Rects.Load(); got != 2*first {
		t.Errorf("Rects after two identical queries = %d, want %d", got, 2*first)
	}

	stats.Reset()
	if stats.Rects.Load() != 0 || stats.DiffOps.Load() != 0 {
		t.Error("Reset did not zero the counters")
	}
}
