package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/studymaster/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deadAddr returns a base URL nothing is listening on.
func deadAddr(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	return srv.URL
}

func probeConfig(candidates ...string) Config {
	cfg := DefaultConfig()
	cfg.Candidates = candidates
	cfg.ProbeTimeout = 500 * time.Millisecond
	return cfg
}

func TestResolver_OverrideSkipsProbing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	cfg := probeConfig(srv.URL)
	cfg.BaseOverride = "http://pinned.example"
	r := NewResolver(cfg, store.NewMemoryScope(), nil)

	assert.Equal(t, "http://pinned.example", r.Base(context.Background()))
	assert.Equal(t, int32(0), hits.Load())
}

func TestResolver_CachedBaseSkipsProbing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	durable := store.NewMemoryScope()
	require.NoError(t, durable.Set(store.KeyAPIBase, "http://cached.example"))

	r := NewResolver(probeConfig(srv.URL), durable, nil)

	assert.Equal(t, "http://cached.example", r.Base(context.Background()))
	assert.Equal(t, int32(0), hits.Load())
}

func TestResolver_PicksFirstReachableCandidate(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		// Any HTTP response counts as reachable, even an error status.
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	durable := store.NewMemoryScope()
	r := NewResolver(probeConfig(deadAddr(t), srv.URL), durable, nil)

	assert.Equal(t, srv.URL, r.Base(context.Background()))
	assert.Equal(t, int32(1), hits.Load())

	cached, ok := durable.Get(store.KeyAPIBase)
	assert.True(t, ok, "resolved base is persisted")
	assert.Equal(t, srv.URL, cached)
}

func TestResolver_AllUnreachableSelectsFallback(t *testing.T) {
	dead1 := deadAddr(t)
	dead2 := deadAddr(t)
	dead3 := deadAddr(t)

	durable := store.NewMemoryScope()
	r := NewResolver(probeConfig(dead1, dead2, dead3), durable, nil)

	assert.Equal(t, dead2, r.Base(context.Background()), "second candidate is the designated fallback")

	cached, ok := durable.Get(store.KeyAPIBase)
	assert.True(t, ok, "fallback is persisted too")
	assert.Equal(t, dead2, cached)
}

func TestResolver_Memoized(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	r := NewResolver(probeConfig(srv.URL), store.NewMemoryScope(), nil)

	first := r.Base(context.Background())
	second := r.Base(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load(), "later calls must not probe again")
}

func TestResolver_SingleFlight(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(20 * time.Millisecond)
	}))
	defer srv.Close()

	r := NewResolver(probeConfig(srv.URL), store.NewMemoryScope(), nil)

	const callers = 8
	results := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Base(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load(), "concurrent first callers share one probe round")
	for _, got := range results {
		assert.Equal(t, srv.URL, got)
	}
}
