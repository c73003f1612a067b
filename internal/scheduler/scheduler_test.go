package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met")
}

func TestTasksRunUntilStop(t *testing.T) {
	s := New(nil)
	var fast, slow atomic.Int64
	s.Add(Task{Name: "fast", Interval: 5 * time.Millisecond, Fn: func(context.Context) { fast.Add(1) }})
	s.Add(Task{Name: "slow", Interval: time.Hour, RunAtStart: true, Fn: func(context.Context) { slow.Add(1) }})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	eventually(t, func() bool { return fast.Load() >= 3 && slow.Load() == 1 })

	s.Stop()
	stopped := fast.Load()
	time.Sleep(30 * time.Millisecond)
	if fast.Load() != stopped {
		t.Fatalf("task ran after Stop: %d -> %d", stopped, fast.Load())
	}
	select {
	case <-s.Done():
	default:
		t.Fatal("Done should be closed after Stop")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := New(nil)
	s.Stop() // antes de Start não faz nada
	s.Add(Task{Name: "x", Interval: time.Millisecond, Fn: func(context.Context) {}})
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	s.Stop()
	s.Stop()
}

func TestStartTwice(t *testing.T) {
	s := New(nil)
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()
	if err := s.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestParentContextCancelStopsTasks(t *testing.T) {
	s := New(nil)
	s.Add(Task{Name: "x", Interval: time.Millisecond, Fn: func(context.Context) {}})
	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("tasks did not stop on parent cancel")
	}
}

func TestPanickingTaskKeepsRunning(t *testing.T) {
	s := New(nil)
	var calls atomic.Int64
	s.Add(Task{Name: "boom", Interval: 2 * time.Millisecond, Fn: func(context.Context) {
		calls.Add(1)
		panic("boom")
	}})
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()
	eventually(t, func() bool { return calls.Load() >= 2 })
}

func TestAddIgnoresInvalidTasks(t *testing.T) {
	s := New(nil)
	s.Add(Task{Name: "nil fn", Interval: time.Second})
	s.Add(Task{Name: "no interval", Fn: func(context.Context) {}})
	s.Add(Task{Name: "ok", Interval: time.Second, Fn: func(context.Context) {}})
	if names := s.Names(); len(names) != 1 || names[0] != "ok" {
		t.Fatalf("unexpected tasks: %v", names)
	}
}
