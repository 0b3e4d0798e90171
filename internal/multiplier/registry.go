package multiplier

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Registry maps names to strategies. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	multipliers map[string]Multiplier
}

// extraMultipliers are registered by optional build-tagged files.
var extraMultipliers = map[string]func() Multiplier{}

// NewRegistry returns a Registry holding "simple", "karatsuba", "fft" and
// "auto" (a Selector configured with t), plus any strategies compiled in
// with build tags.
func NewRegistry(t Thresholds, logger zerolog.Logger) *Registry {
	r := &Registry{multipliers: make(map[string]Multiplier)}
	r.multipliers["simple"] = Simple{}
	r.multipliers["karatsuba"] = Karatsuba{Threshold: max(t.Karatsuba, 0)}
	r.multipliers["fft"] = FFT{}
	r.multipliers["auto"] = NewSelector(WithThresholds(t), WithLogger(logger))
	for name, build := range extraMultipliers {
		r.multipliers[name] = build()
	}
	return r
}

// Register adds a strategy under name. Names must be unique.
func (r *Registry) Register(name string, m Multiplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.multipliers[name]; exists {
		return fmt.Errorf("multiplier %q already registered", name)
	}
	r.multipliers[name] = m
	return nil
}

// Get returns the strategy registered under name.
func (r *Registry) Get(name string) (Multiplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.multipliers[name]
	if !ok {
		return nil, fmt.Errorf("unknown multiplier %q", name)
	}
	return m, nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.multipliers))
	for name := range r.multipliers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	defaultOnce     sync.Once
	defaultSelector *Selector
)

// Default returns the process-wide automatic selector built from
// DefaultThresholds.
func Default() *Selector {
	defaultOnce.Do(func() {
		defaultSelector = NewSelector()
	})
	return defaultSelector
}
