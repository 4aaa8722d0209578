package health

import (
	"context"
	"testing"
	"time"
)

type staticChecker struct {
	name    string
	healthy bool
	delay   time.Duration
}

func (c staticChecker) Check(ctx context.Context) CheckResult {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return CheckResult{Name: c.name, Healthy: false, Error: ctx.Err().Error()}
		}
	}
	res := CheckResult{Name: c.name, Healthy: c.healthy}
	if !c.healthy {
		res.Error = "down"
	}
	return res
}

func TestProbeRunnerReady(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		r := NewProbeRunner(time.Second, 0,
			staticChecker{name: "db", healthy: true},
			staticChecker{name: "redis", healthy: true},
		)
		ready, results := r.Ready(context.Background())
		if !ready {
			t.Fatalf("expected ready, results=%+v", results)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
	})

	t.Run("one unhealthy dependency fails the probe", func(t *testing.T) {
		r := NewProbeRunner(time.Second, 0,
			staticChecker{name: "db", healthy: true},
			staticChecker{name: "redis", healthy: false},
		)
		ready, results := r.Ready(context.Background())
		if ready {
			t.Fatal("expected not ready")
		}
		var found bool
		for _, res := range results {
			if res.Name == "redis" && !res.Healthy && res.Error == "down" {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected redis failure in results: %+v", results)
		}
	})

	t.Run("startup grace fails readiness without running checks", func(t *testing.T) {
		r := NewProbeRunner(time.Second, time.Hour, staticChecker{name: "db", healthy: true})
		ready, results := r.Ready(context.Background())
		if ready {
			t.Fatal("expected not ready during grace period")
		}
		if len(results) != 1 || results[0].Name != "startup_grace" {
			t.Fatalf("expected startup_grace result, got %+v", results)
		}
	})

	t.Run("slow check is cut off by the per-check timeout", func(t *testing.T) {
		r := NewProbeRunner(10*time.Millisecond, 0, staticChecker{name: "db", healthy: true, delay: time.Second})
		start := time.Now()
		ready, _ := r.Ready(context.Background())
		if ready {
			t.Fatal("expected not ready when the check times out")
		}
		if time.Since(start) > 500*time.Millisecond {
			t.Fatal("probe must not wait out the full check delay")
		}
	})

	t.Run("nil checkers are skipped", func(t *testing.T) {
		r := NewProbeRunner(time.Second, 0, nil, staticChecker{name: "db", healthy: true})
		ready, results := r.Ready(context.Background())
		if !ready || len(results) != 1 {
			t.Fatalf("expected single healthy result, ready=%v results=%+v", ready, results)
		}
	})
}
