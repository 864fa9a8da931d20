// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"slices"
	"sync"
)

// Registry of engines by name (e.g., "gomp3").
type Registry struct {
	engines map[string]Engine

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[string]Engine),
		mtx:     &sync.Mutex{},
	}
}

func (r *Registry) Register(name string, e Engine) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.engines[name] = e
}

func (r *Registry) Get(name string) (Engine, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.engines[name]
	return e, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
