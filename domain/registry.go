package domain

import (
	"groundcore/internal/arena"
	"groundcore/symbol"
)

// ID identifies a PredicateDomain within a Registry. Spec §9's REDESIGN
// FLAGS: "Predicate domains ... are all central arenas keyed by
// monotonically growing ids" — Registry is that arena for domains
// themselves, one level up from PredicateDomain's own per-atom arena.
type ID arena.ID

// Registry is the central, monotonically-growing catalog of every
// PredicateDomain a Grounder run creates, so callers that need a stable
// cross-reference to a domain (serialized state, a rule's recorded
// dependency, a log field) can carry a small ID instead of a raw
// pointer, dereferencing back through the Registry when they need the
// domain itself.
type Registry struct {
	domains *arena.Arena[*PredicateDomain]
	byName  map[string]ID
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		domains: arena.New[*PredicateDomain](),
		byName:  make(map[string]ID),
	}
}

// Declare returns the domain for sig, creating and registering one with
// New(sig, store) if this is the first reference — keyed by the
// signature's display name, matching how a non-ground program
// re-references one domain by name across many rules.
func (r *Registry) Declare(sig symbol.Signature, store *symbol.Store) (ID, *PredicateDomain) {
	name := sig.String(store)
	if id, ok := r.byName[name]; ok {
		return id, r.domains.Get(arena.ID(id))
	}
	d := New(sig, store)
	id := ID(r.domains.Insert(d))
	r.byName[name] = id
	return id, d
}

// Get dereferences id through the arena.
func (r *Registry) Get(id ID) *PredicateDomain { return r.domains.Get(arena.ID(id)) }

// Len returns the number of registered domains.
func (r *Registry) Len() int { return r.domains.Len() }

// All returns every registered domain in registration order.
func (r *Registry) All() []*PredicateDomain { return r.domains.All() }
