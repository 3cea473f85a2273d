package embedding

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
)

type mockStore struct {
	mu      sync.Mutex
	vectors map[string][]float64
	gets    int
	sets    int
	getErr  error
}

func newMockStore() *mockStore {
	return &mockStore{vectors: map[string][]float64{}}
}

func (m *mockStore) GetVector(_ context.Context, hash string) ([]float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.vectors[hash]
	return v, ok, nil
}

func (m *mockStore) SetVector(_ context.Context, hash string, vec []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.vectors[hash] = vec
	return nil
}

func constVec(v ...float64) ComputeFunc {
	return func(context.Context) ([]float64, error) { return v, nil }
}

func TestGetOrComputeCachesResult(t *testing.T) {
	c := NewCache(8, nil, nil)
	ctx := context.Background()

	var calls int32
	compute := func(context.Context) ([]float64, error) {
		atomic.AddInt32(&calls, 1)
		return []float64{1, 2, 3}, nil
	}

	for i := 0; i < 3; i++ {
		vec, err := c.GetOrCompute(ctx, "h1", compute)
		if err != nil {
			t.Fatalf("GetOrCompute: %v", err)
		}
		if len(vec) != 3 || vec[0] != 1 {
			t.Fatalf("unexpected vector %v", vec)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("compute called %d times, want 1", got)
	}
}

func TestComputeFailureIsPropagatedAndNotCached(t *testing.T) {
	c := NewCache(8, nil, nil)
	ctx := context.Background()

	wantErr := errors.New("model unavailable")
	_, err := c.GetOrCompute(ctx, "h1", func(context.Context) ([]float64, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected compute error unchanged, got %v", err)
	}
	if _, ok := c.Get("h1"); ok {
		t.Fatalf("failure was cached")
	}

	vec, err := c.GetOrCompute(ctx, "h1", constVec(9))
	if err != nil || len(vec) != 1 || vec[0] != 9 {
		t.Fatalf("retry after failure: vec=%v err=%v", vec, err)
	}
}

func TestLRUEvictionKeepsRecentlyUsed(t *testing.T) {
	c := NewCache(2, nil, nil)
	ctx := context.Background()

	if _, err := c.GetOrCompute(ctx, "a", constVec(1)); err != nil {
		t.Fatalf("a: %v", err)
	}
	if _, err := c.GetOrCompute(ctx, "b", constVec(2)); err != nil {
		t.Fatalf("b: %v", err)
	}

	// Touch a so b becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("a missing before eviction")
	}

	if _, err := c.GetOrCompute(ctx, "c", constVec(3)); err != nil {
		t.Fatalf("c: %v", err)
	}

	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("a should have survived eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatalf("c should be present")
	}
	if got := c.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}
}

func TestConcurrentMissesComputeOnce(t *testing.T) {
	c := NewCache(64, nil, nil)
	ctx := context.Background()

	var calls int32
	release := make(chan struct{})
	compute := func(context.Context) ([]float64, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []float64{42}, nil
	}

	const workers = 16
	var wg sync.WaitGroup
	started := make(chan struct{}, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started <- struct{}{}
			_, errs[i] = c.GetOrCompute(ctx, "shared", compute)
		}(i)
	}
	for i := 0; i < workers; i++ {
		<-started
	}
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("compute called %d times, want 1", got)
	}
}

func TestRemoteTierServesMisses(t *testing.T) {
	remote := newMockStore()
	remote.vectors["h1"] = []float64{7, 7}

	c := NewCache(8, remote, nil)
	ctx := context.Background()

	vec, err := c.GetOrCompute(ctx, "h1", func(context.Context) ([]float64, error) {
		t.Fatalf("compute should not run when the shared tier has the vector")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if len(vec) != 2 || vec[0] != 7 {
		t.Fatalf("unexpected vector %v", vec)
	}

	// Computed vectors get written back to the shared tier.
	if _, err := c.GetOrCompute(ctx, "h2", constVec(5)); err != nil {
		t.Fatalf("h2: %v", err)
	}
	remote.mu.Lock()
	_, wrote := remote.vectors["h2"]
	remote.mu.Unlock()
	if !wrote {
		t.Fatalf("computed vector not written to shared tier")
	}
}

func TestRemoteTierFailureFallsBackToCompute(t *testing.T) {
	remote := newMockStore()
	remote.getErr = errors.New("connection refused")

	c := NewCache(8, remote, nil)
	vec, err := c.GetOrCompute(context.Background(), "h1", constVec(3))
	if err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if len(vec) != 1 || vec[0] != 3 {
		t.Fatalf("unexpected vector %v", vec)
	}
}

func TestContentHashNormalization(t *testing.T) {
	a := ContentHash("Senior  Go Engineer\n")
	b := ContentHash("senior go engineer")
	if a != b {
		t.Fatalf("normalized texts should hash identically")
	}
	if a == ContentHash("junior go engineer") {
		t.Fatalf("distinct texts should hash differently")
	}
	if len(a) != 64 {
		t.Fatalf("hash length = %d, want 64", len(a))
	}
}

func TestCosine(t *testing.T) {
	cases := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero norm", []float64{0, 0}, []float64{1, 1}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Cosine(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Cosine = %v, want %v", got, tc.want)
			}
		})
	}
}
