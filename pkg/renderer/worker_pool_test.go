package renderer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolVisitsEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{1, 3, 8} {
		pool := NewWorkerPool(workers)
		visits := make([]int32, 97)

		err := pool.ForEach(context.Background(), len(visits), func(i int) error {
			atomic.AddInt32(&visits[i], 1)
			return nil
		})
		if err != nil {
			t.Fatalf("workers=%d: unexpected error %v", workers, err)
		}
		for i, v := range visits {
			if v != 1 {
				t.Errorf("workers=%d: index %d visited %d times", workers, i, v)
			}
		}
	}
}

func TestWorkerPoolLimitsConcurrency(t *testing.T) {
	pool := NewWorkerPool(3)
	var inFlight, peak int32
	var mu sync.Mutex

	err := pool.ForEach(context.Background(), 30, func(i int) error {
		n := atomic.AddInt32(&inFlight, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	})
	if err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	if peak > 3 {
		t.Errorf("Expected at most 3 concurrent calls, saw %d", peak)
	}
}

func TestWorkerPoolStopsOnError(t *testing.T) {
	pool := NewWorkerPool(2)
	boom := errors.New("boom")

	err := pool.ForEach(context.Background(), 1000, func(i int) error {
		if i == 5 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected boom, got %v", err)
	}
}

func TestWorkerPoolCancelledContext(t *testing.T) {
	pool := NewWorkerPool(4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	err := pool.ForEach(ctx, 100, func(i int) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("Expected no calls on a cancelled context, got %d", calls)
	}
}

func TestWorkerPoolDefaultsToCPUCount(t *testing.T) {
	if NewWorkerPool(0).NumWorkers() < 1 {
		t.Error("Expected at least one worker")
	}
}
