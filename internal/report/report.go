package report

import (
	"sort"
	"sync"
	"time"
)

type Report struct {
	mutex      sync.RWMutex
	lookups    map[string]int64
	hits       map[string]int64
	order      []string
	resolved   map[string]string
	unresolved []string
	startTime  time.Time
}

type Snapshot struct {
	Duration   string                 `yaml:"duration"`
	Resolved   map[string]string      `yaml:"resolved"`
	Unresolved []string               `yaml:"unresolved,omitempty"`
	Sources    map[string]SourceStats `yaml:"sources"`
	Order      []string               `yaml:"order"`
}

type SourceStats struct {
	Lookups int64 `yaml:"lookups"`
	Hits    int64 `yaml:"hits"`
}

func New() *Report {
	return &Report{
		lookups:   make(map[string]int64),
		hits:      make(map[string]int64),
		resolved:  make(map[string]string),
		startTime: time.Now(),
	}
}

func (r *Report) RecordLookup(source string, hit bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, seen := r.lookups[source]; !seen {
		r.order = append(r.order, source)
	}
	r.lookups[source]++
	if hit {
		r.hits[source]++
	}
}

func (r *Report) RecordResolved(key, source string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.resolved[key] = source
}

func (r *Report) RecordUnresolved(key string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.unresolved = append(r.unresolved, key)
}

// Ok reports whether nothing has failed to resolve so far.
func (r *Report) Ok() bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.unresolved) == 0
}

func (r *Report) Snapshot() Snapshot {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	snap := Snapshot{
		Duration: time.Since(r.startTime).String(),
		Resolved: make(map[string]string, len(r.resolved)),
		Sources:  make(map[string]SourceStats, len(r.lookups)),
		Order:    append([]string(nil), r.order...),
	}

	for key, source := range r.resolved {
		snap.Resolved[key] = source
	}

	if len(r.unresolved) > 0 {
		snap.Unresolved = append([]string(nil), r.unresolved...)
		sort.Strings(snap.Unresolved)
	}

	for source, n := range r.lookups {
		snap.Sources[source] = SourceStats{
			Lookups: n,
			Hits:    r.hits[source],
		}
	}

	return snap
}
