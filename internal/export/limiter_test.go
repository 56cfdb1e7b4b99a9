package export

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLimiter_AcquireRelease(t *testing.T) {
	l := NewLimiter(2, time.Second)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := l.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d failed: %v", i, err)
		}
	}
	if got := l.Active(); got != 2 {
		t.Errorf("Active = %d, want 2", got)
	}

	l.Release()
	l.Release()
	if got := l.Active(); got != 0 {
		t.Errorf("after Release, Active = %d, want 0", got)
	}
}

func TestLimiter_BusyWhenFull(t *testing.T) {
	l := NewLimiter(1, 50*time.Millisecond)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer l.Release()

	if err := l.Acquire(ctx); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
}

func TestLimiter_ContextCancellation(t *testing.T) {
	l := NewLimiter(1, 5*time.Second)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer l.Release()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Acquire(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Error("Acquire did not return after cancellation")
	}
}

func TestLimiter_NeverExceedsCapacity(t *testing.T) {
	const capacity = 3
	l := NewLimiter(capacity, time.Second)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		peakSeen int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			defer l.Release()

			mu.Lock()
			if n := l.Active(); n > peakSeen {
				peakSeen = n
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
		}()
	}
	wg.Wait()

	if peakSeen > capacity {
		t.Errorf("observed %d concurrent renders, capacity %d", peakSeen, capacity)
	}
	if got := l.Active(); got != 0 {
		t.Errorf("final Active = %d, want 0", got)
	}
}

func TestLimiter_Defaults(t *testing.T) {
	if got := NewLimiter(0, 0).Capacity(); got != DefaultMaxConcurrent {
		t.Errorf("Capacity = %d, want %d", got, DefaultMaxConcurrent)
	}
}
