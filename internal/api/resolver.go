package api

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/alexanderramin/studymaster/internal/store"
)

// Resolver discovers a working backend base address from the configured
// candidate list and memoizes it for the process lifetime and, through
// the durable store, across restarts.
//
// Resolution is single-flight: concurrent first callers block on one
// probe round and all observe the same outcome. A resolved address is
// never invalidated during a session; a wrong cached choice persists
// until the store is cleared.
type Resolver struct {
	cfg      Config
	durable  store.Scope
	http     *http.Client
	observer Observer

	once sync.Once
	base string
}

// NewResolver creates a Resolver that persists its choice in the
// durable scope.
func NewResolver(cfg Config, durable store.Scope, observer Observer) *Resolver {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Resolver{
		cfg:     cfg,
		durable: durable,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: cfg.ProbeTimeout,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// Base returns the resolved backend base address. The first call may
// probe candidates; every later call returns the memoized result with
// no network activity. Base never fails: when no candidate responds the
// designated fallback is selected anyway so that the subsequent real
// request produces a concrete error instead of resolution looping.
func (r *Resolver) Base(ctx context.Context) string {
	r.once.Do(func() {
		r.base = r.resolve(ctx)
	})
	return r.base
}

func (r *Resolver) resolve(ctx context.Context) string {
	if r.cfg.BaseOverride != "" {
		return r.cfg.BaseOverride
	}

	if cached, ok := r.durable.Get(store.KeyAPIBase); ok && cached != "" {
		return cached
	}

	for _, candidate := range r.cfg.Candidates {
		if r.probe(ctx, candidate) {
			r.persist(candidate)
			return candidate
		}
	}

	// Best effort: nothing answered, select the fallback anyway.
	fallback := r.cfg.FallbackBase()
	r.persist(fallback)
	r.observer.OnCallComplete(CallEvent{
		Op:        "probe",
		Target:    fallback,
		Success:   false,
		ErrorCode: "FALLBACK",
	})
	return fallback
}

// probe issues a bounded liveness check against one candidate. Any HTTP
// response counts as reachable; only protocol failure or timeout does not.
func (r *Resolver) probe(ctx context.Context, base string) bool {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/", nil)
	if err != nil {
		return false
	}

	resp, err := r.http.Do(req)
	event := CallEvent{
		Op:        "probe",
		Target:    base,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		event.ErrorCode = "UNREACHABLE"
		r.observer.OnCallComplete(event)
		return false
	}
	resp.Body.Close()
	event.Status = resp.StatusCode
	event.Success = true
	r.observer.OnCallComplete(event)
	return true
}

func (r *Resolver) persist(base string) {
	// Store failures degrade silently; the in-memory choice stands.
	_ = r.durable.Set(store.KeyAPIBase, base)
}
