package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestGetSetRoundTrip(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := context.Background()

	if _, ok := s.Get(ctx, "missing"); ok {
		t.Fatalf("empty store should miss")
	}

	s.Set(ctx, "k", 42)
	got, ok := s.Get(ctx, "k")
	if !ok || got.(int) != 42 {
		t.Fatalf("Get = %v, %v", got, ok)
	}
}

func TestEmptyKeyIsNeverStored(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := context.Background()

	s.Set(ctx, "", "value")
	if _, ok := s.Get(ctx, ""); ok {
		t.Fatalf("empty key must not hit")
	}
}

func TestEntriesExpire(t *testing.T) {
	s := NewStore(10 * time.Millisecond)
	ctx := context.Background()

	s.Set(ctx, "k", "v")
	time.Sleep(25 * time.Millisecond)
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatalf("entry should have expired")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	s := NewStore(0)
	ctx := context.Background()

	s.Set(ctx, "k", "v")
	time.Sleep(15 * time.Millisecond)
	if _, ok := s.Get(ctx, "k"); !ok {
		t.Fatalf("ttl 0 should keep entries forever")
	}
}

func TestGetOrComputeCaches(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := context.Background()

	calls := 0
	compute := func() (any, error) {
		calls++
		return "computed", nil
	}

	for i := 0; i < 3; i++ {
		got, err := s.GetOrCompute(ctx, "k", compute)
		if err != nil {
			t.Fatalf("GetOrCompute: %v", err)
		}
		if got.(string) != "computed" {
			t.Fatalf("GetOrCompute = %v", got)
		}
	}
	if calls != 1 {
		t.Fatalf("compute ran %d times, want 1", calls)
	}
}

func TestGetOrComputeDoesNotCacheErrors(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := context.Background()
	boom := errors.New("boom")

	if _, err := s.GetOrCompute(ctx, "k", func() (any, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected the compute error, got %v", err)
	}
	got, err := s.GetOrCompute(ctx, "k", func() (any, error) { return "ok", nil })
	if err != nil || got.(string) != "ok" {
		t.Fatalf("failed compute must not poison the key: %v, %v", got, err)
	}
}

func TestGetOrComputeSharesConcurrentWork(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := context.Background()

	var mu sync.Mutex
	calls := 0
	gate := make(chan struct{})
	compute := func() (any, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-gate
		return "shared", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.GetOrCompute(ctx, "k", compute)
			if err != nil || got.(string) != "shared" {
				t.Errorf("GetOrCompute = %v, %v", got, err)
			}
		}()
	}
	time.Sleep(10 * time.Millisecond)
	close(gate)
	wg.Wait()

	if calls != 1 {
		t.Fatalf("compute ran %d times under contention, want 1", calls)
	}
}

func TestInvalidateAndReset(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := context.Background()

	s.Set(ctx, "a", 1)
	s.Set(ctx, "b", 2)

	s.Invalidate(ctx, "a")
	if _, ok := s.Get(ctx, "a"); ok {
		t.Fatalf("invalidated key should miss")
	}
	if _, ok := s.Get(ctx, "b"); !ok {
		t.Fatalf("other keys must survive invalidation")
	}

	s.Reset()
	if _, ok := s.Get(ctx, "b"); ok {
		t.Fatalf("reset should drop everything")
	}
}
