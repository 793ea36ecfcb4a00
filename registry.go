package ipclog

import (
	"sort"
	"sync"
	"time"
)

// Registry owns one RateLimitState per site key. States are created on first
// use and live as long as the registry.
type Registry struct {
	interval time.Duration
	burst    int
	sites    sync.Map // SiteKey -> *RateLimitState
}

// NewRegistry returns a registry whose new sites allow burst admits per
// interval.
func NewRegistry(interval time.Duration, burst int) *Registry {
	return &Registry{interval: interval, burst: burst}
}

// Site returns the state for key, creating it with the registry defaults.
// A zero key yields nil, which the limiter always suppresses.
func (r *Registry) Site(key SiteKey) *RateLimitState {
	if r == nil || !key.valid() {
		return nil
	}
	if v, ok := r.sites.Load(key); ok {
		return v.(*RateLimitState)
	}
	st := NewRateLimitState(r.interval, r.burst)
	st.key = key
	v, _ := r.sites.LoadOrStore(key, st)
	return v.(*RateLimitState)
}

// Lookup returns the state for key without creating it.
func (r *Registry) Lookup(key SiteKey) (*RateLimitState, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.sites.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*RateLimitState), true
}

// Configure overrides the limits of a site, creating it if needed, and
// starts a new window. The suppressed count carries over.
func (r *Registry) Configure(key SiteKey, interval time.Duration, burst int) *RateLimitState {
	st := r.Site(key)
	if st == nil {
		return nil
	}
	st.reconfigure(interval, burst)
	return st
}

// Len returns the number of known sites.
func (r *Registry) Len() int {
	n := 0
	r.sites.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Snapshot returns the stats of every site ordered by key.
func (r *Registry) Snapshot() []SiteStats {
	var out []SiteStats
	r.sites.Range(func(_, v any) bool {
		out = append(out, v.(*RateLimitState).stats())
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key.String() < out[j].Key.String()
	})
	return out
}
