package naming

import "fmt"

// IDResolver hands out identifiers that are unique within one language
// partition. The first claim of a base id keeps it; later claims get "-2",
// "-3", ... in claim order. Use one resolver per partition and claim in
// file-iteration order so the result is deterministic.
type IDResolver struct {
	taken    map[string]bool
	counters map[string]int // base id -> next suffix to try
}

// NewIDResolver creates a ready-to-use resolver.
func NewIDResolver() *IDResolver {
	return &IDResolver{
		taken:    make(map[string]bool),
		counters: make(map[string]int),
	}
}

// Resolve claims base, or the first free "-N" variant of it, and returns the
// claimed id. A suffixed candidate that some earlier entry already owns
// naturally (say "research-desk-2") is skipped.
func (r *IDResolver) Resolve(base string) string {
	if !r.taken[base] {
		r.taken[base] = true
		return base
	}

	n := r.counters[base]
	if n < 2 {
		n = 2
	}
	for {
		candidate := fmt.Sprintf("%s-%d", base, n)
		n++
		if !r.taken[candidate] {
			r.counters[base] = n
			r.taken[candidate] = true
			return candidate
		}
	}
}

// Taken reports whether id has already been claimed.
func (r *IDResolver) Taken(id string) bool { return r.taken[id] }
