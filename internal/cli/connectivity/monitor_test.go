package connectivity

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestMonitor_OnlineEdge_FiresCallbacks(t *testing.T) {
	errDown := errors.New("down")
	up := false
	m := NewMonitor(func(ctx context.Context) error {
		if up {
			return nil
		}
		return errDown
	}, time.Second, testLogger())

	fired := 0
	m.OnOnline(func(ctx context.Context) { fired++ })

	ctx := context.Background()
	// офлайн → ничего
	if m.Check(ctx) {
		t.Fatalf("expected offline")
	}
	// офлайн повторно → ничего
	m.Check(ctx)
	if fired != 0 {
		t.Fatalf("callback fired while offline: %d", fired)
	}

	// фронт офлайн → онлайн
	up = true
	if !m.Check(ctx) {
		t.Fatalf("expected online")
	}
	if fired != 1 {
		t.Fatalf("expected 1 callback, got %d", fired)
	}

	// онлайн держится → повторных вызовов нет
	m.Check(ctx)
	if fired != 1 {
		t.Fatalf("callback refired without offline gap: %d", fired)
	}
	if !m.Online() {
		t.Fatalf("state not online")
	}
}

func TestMonitor_FirstCheckOnline_NoCallback(t *testing.T) {
	m := NewMonitor(func(ctx context.Context) error { return nil }, time.Second, testLogger())
	fired := 0
	m.OnOnline(func(ctx context.Context) { fired++ })

	if !m.Check(context.Background()) {
		t.Fatalf("expected online")
	}
	// старт сразу в онлайне — фронта не было
	if fired != 0 {
		t.Fatalf("callback fired on initial online state")
	}
}

func TestMonitor_Run_StopsOnCancel(t *testing.T) {
	calls := 0
	m := NewMonitor(func(ctx context.Context) error { calls++; return nil }, 5*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
	if calls < 2 {
		t.Fatalf("expected periodic probes, got %d", calls)
	}
}
