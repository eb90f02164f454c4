package domain

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"

	"groundcore/internal/arena"
	"groundcore/symbol"
)

// PredicateDomain stores, looks up, and indexes all ground atoms for one
// Signature. Append-only: atoms are never removed except by the explicit
// whole-domain Cleanup after the solver proves some atoms false (spec
// §3's Lifecycle). Atom storage is a central arena.Arena keyed by
// monotonically growing ids (spec §9's REDESIGN FLAGS); an Atom's UID
// field is exactly that arena id, and every accessor below dereferences
// through d.atoms rather than holding a second copy of the slice.
type PredicateDomain struct {
	Sig   symbol.Signature
	store *symbol.Store

	bySymbol *treemap.Map // symbol.Symbol -> *Atom, ordered by Store.Compare
	atoms    *arena.Arena[*Atom]

	generation int
	incOffset  int

	indices map[string]*Index
}

// New creates an empty domain for sig, using store to order and project
// symbols.
func New(sig symbol.Signature, store *symbol.Store) *PredicateDomain {
	cmp := func(a, b interface{}) int {
		return store.Compare(a.(symbol.Symbol), b.(symbol.Symbol))
	}
	return &PredicateDomain{
		Sig:      sig,
		store:    store,
		bySymbol: treemap.NewWith(cmp),
		atoms:    arena.New[*Atom](),
		indices:  make(map[string]*Index),
	}
}

// Reserve returns the existing atom for sym or creates one with
// Defined=false (spec §4.2: "reserve(sym) → (iter, new?)").
func (d *PredicateDomain) Reserve(sym symbol.Symbol) (*Atom, bool) {
	if v, ok := d.bySymbol.Get(sym); ok {
		return v.(*Atom), false
	}
	atom := &Atom{Sym: sym}
	id := d.atoms.Insert(atom)
	atom.UID = uint32(id)
	d.bySymbol.Put(sym, atom)
	return atom, true
}

// Define is Reserve plus marking the atom Defined (and, if fact, Fact).
// Once Defined, an atom is never un-defined (spec §3 invariant).
func (d *PredicateDomain) Define(sym symbol.Symbol, fact bool) (*Atom, bool) {
	atom, isNew := d.Reserve(sym)
	atom.Defined = true
	if fact {
		atom.Fact = true
	}
	return atom, isNew
}

// Find returns the atom for sym without creating one.
func (d *PredicateDomain) Find(sym symbol.Symbol) (*Atom, bool) {
	if v, ok := d.bySymbol.Get(sym); ok {
		return v.(*Atom), true
	}
	return nil, false
}

// Generation returns the domain's current generation counter.
func (d *PredicateDomain) Generation() int { return d.generation }

// IncOffset returns the domain size as of the last AdvanceGeneration call;
// atoms with UID >= IncOffset() are "new this generation".
func (d *PredicateDomain) IncOffset() int { return d.incOffset }

// Size returns the number of atoms in the domain.
func (d *PredicateDomain) Size() int { return d.atoms.Len() }

// AdvanceGeneration bumps the generation counter and snapshots the
// current size as the new incOffset; called by the scheduler at a phase
// boundary (spec §4.6 step 3: "freeze the involved domains by advancing
// their generation").
func (d *PredicateDomain) AdvanceGeneration() {
	d.incOffset = d.atoms.Len()
	d.generation++
}

// AtomByUID returns the atom with the given uid.
func (d *PredicateDomain) AtomByUID(uid uint32) *Atom { return d.atoms.Get(arena.ID(uid)) }

// matches reports whether uid lies in the slice selected by mode.
func (d *PredicateDomain) matches(uid uint32, mode MatchMode) bool {
	switch mode {
	case MatchNew:
		return int(uid) >= d.incOffset
	case MatchOld:
		return int(uid) < d.incOffset
	default:
		return true
	}
}

// Lookup finds the single atom whose symbol equals sym's evaluation
// (every variable in sym must already be bound), filtered by mode. This
// backs the zero-new-variables Matcher/PosMatcher path of spec §4.3.
func (d *PredicateDomain) Lookup(sym symbol.Symbol, mode MatchMode) (*Atom, bool) {
	atom, ok := d.Find(sym)
	if !ok || !d.matches(atom.UID, mode) {
		return nil, false
	}
	return atom, true
}

// Add creates (or fetches) the secondary index keyed by the given
// argument positions (spec §4.2: "add(indexKey, template) → &index").
func (d *PredicateDomain) Add(positions []int) *Index {
	key := positionsKey(positions)
	if idx, ok := d.indices[key]; ok {
		return idx
	}
	idx := newIndex(positions)
	d.indices[key] = idx
	return idx
}

// Update streams atoms appended since idx's last Update into idx,
// invoking onNew for each newly imported uid, honoring the Delayed flag:
// a delayed atom is parked until it clears, tracked by a second cursor
// (spec §4.2: "update(onNew, term, &imported, &importedDelayed)").
func (d *PredicateDomain) Update(idx *Index, onNew func(uid uint32)) (changed bool) {
	for uid := idx.imported; uid < d.atoms.Len(); uid++ {
		atom := d.atoms.Get(arena.ID(uid))
		if atom.Delayed {
			idx.pendingDelayed = append(idx.pendingDelayed, uint32(uid))
			continue
		}
		d.importInto(idx, atom)
		if onNew != nil {
			onNew(uint32(uid))
		}
		changed = true
	}
	idx.imported = d.atoms.Len()

	kept := idx.pendingDelayed[:0]
	for _, uid := range idx.pendingDelayed {
		atom := d.atoms.Get(arena.ID(uid))
		if atom.Delayed {
			kept = append(kept, uid)
			continue
		}
		d.importInto(idx, atom)
		if onNew != nil {
			onNew(uid)
		}
		changed = true
		idx.importedDelayed++
	}
	idx.pendingDelayed = kept
	return changed
}

func (d *PredicateDomain) importInto(idx *Index, atom *Atom) {
	key, ok := keyFor(d.store, atom.Sym, idx.Positions)
	if !ok {
		return
	}
	idx.insert(key, atom.UID)
}

// LookupIndexed returns the atoms indexed by idx under key (a projection
// onto idx.Positions built by KeyFor or KeyForValues), filtered by mode.
func (d *PredicateDomain) LookupIndexed(idx *Index, key string, mode MatchMode) []*Atom {
	uids := idx.Lookup(key)
	out := make([]*Atom, 0, len(uids))
	for _, uid := range uids {
		if d.matches(uid, mode) {
			out = append(out, d.atoms.Get(arena.ID(uid)))
		}
	}
	return out
}

// KeyFor exposes the index-key projection for callers (binder package)
// that must build a lookup key from a partially-bound template without
// going through Update.
func (d *PredicateDomain) KeyFor(sym symbol.Symbol, positions []int) (string, bool) {
	return keyFor(d.store, sym, positions)
}

// KeyForValues builds an index lookup key directly from already-bound
// argument values, for a binder that has evaluated its literal's bound
// positions but does not yet have a complete ground Symbol (some other
// position is still unbound).
func (d *PredicateDomain) KeyForValues(vals []symbol.Symbol) string {
	return keyFromSymbols(vals)
}

// Cleanup compacts the domain given a solver-provided truth assignment,
// removing atoms proven false and returning a uid remap table for
// dependents (spec §3 Lifecycle). keep reports whether the atom with a
// given uid survives.
func (d *PredicateDomain) Cleanup(keep func(uid uint32) bool) map[uint32]uint32 {
	removed := make([]*Atom, 0)
	arenaRemap := d.atoms.Compact(
		func(id arena.ID, atom *Atom) bool {
			if keep(uint32(id)) {
				return true
			}
			removed = append(removed, atom)
			return false
		},
		func(atom *Atom, newID arena.ID) { atom.UID = uint32(newID) },
	)
	for _, atom := range removed {
		d.bySymbol.Remove(atom.Sym)
	}
	remap := make(map[uint32]uint32, len(arenaRemap))
	for oldID, newID := range arenaRemap {
		remap[uint32(oldID)] = uint32(newID)
	}
	d.indices = make(map[string]*Index)
	d.generation++
	d.incOffset = d.atoms.Len()
	return remap
}

func (d *PredicateDomain) String() string {
	return fmt.Sprintf("%s[%d/%d]", d.Sig.String(d.store), d.incOffset, d.atoms.Len())
}
