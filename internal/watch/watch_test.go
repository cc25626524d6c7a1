package watch

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/banshee-data/nav.report/internal/fsutil"
	"github.com/banshee-data/nav.report/internal/monitoring"
)

func TestMain(m *testing.M) {
	restore := monitoring.Mute()
	code := m.Run()
	restore()
	os.Exit(code)
}

func TestWatcherFiresOnModification(t *testing.T) {
	m := fsutil.NewMemoryFileSystem()
	if err := m.WriteFile("nav.json", []byte("v1"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var fired atomic.Int32
	w := New(m, "nav.json", 5*time.Millisecond, func() { fired.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Baseline mod time is taken at start; an unchanged file never fires.
	time.Sleep(30 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("callback fired %d times before any modification", got)
	}

	if err := m.WriteFile("nav.json", []byte("v2"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if fired.Load() == 0 {
		t.Fatal("callback never fired after modification")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}

func TestWatcherToleratesMissingFile(t *testing.T) {
	m := fsutil.NewMemoryFileSystem()

	var fired atomic.Int32
	w := New(m, "nav.json", 5*time.Millisecond, func() { fired.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	// File appears after the watcher starts; its creation counts as a
	// change relative to the zero baseline.
	time.Sleep(20 * time.Millisecond)
	if err := m.WriteFile("nav.json", []byte("v1"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if fired.Load() == 0 {
		t.Fatal("callback never fired after file appeared")
	}
}

func TestWatcherDefaultsInterval(t *testing.T) {
	w := New(fsutil.NewMemoryFileSystem(), "nav.json", 0, func() {})
	if w.interval != 2*time.Second {
		t.Errorf("interval = %v, want 2s", w.interval)
	}
}
