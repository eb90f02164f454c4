package binder

import (
	"groundcore/domain"
	"groundcore/logging"
	"groundcore/symbol"
	"groundcore/term"
)

// PosMatcher handles a fully-bound literal: every variable in repr is
// already bound by the time this binder runs, so repr.Eval gives a
// single concrete Symbol to probe the domain for (spec §4.3's zero-new-
// variables case; grounded on binders.hh's Matcher<Atom>).
type PosMatcher struct {
	Store  *symbol.Store
	Domain *domain.PredicateDomain
	Repr   term.Term
	Mode   Mode

	// Log and Loc, when Log is non-nil, let Init report an
	// arithmetic-undefined evaluation of Repr before silently dropping
	// the match (spec §7). The literal layer wires these in once a
	// Grounder's Logger and the owning rule's Location are known.
	Log *logging.Logger
	Loc logging.Location

	found    bool
	consumed bool
}

func NewPosMatcher(store *symbol.Store, d *domain.PredicateDomain, repr term.Term, mode Mode) *PosMatcher {
	return &PosMatcher{Store: store, Domain: d, Repr: repr, Mode: mode}
}

func (b *PosMatcher) Init(trail *term.Trail) {
	b.consumed = false
	var undefined bool
	sym, ok := b.Repr.Eval(b.Store, &undefined)
	if !ok {
		if undefined {
			warnOperationUndefined(b.Log, b.Loc, "arithmetic operation undefined evaluating "+b.Repr.String(b.Store))
		}
		b.found = false
		return
	}
	_, b.found = b.Domain.Lookup(sym, b.Mode)
}

func (b *PosMatcher) Next(trail *term.Trail) bool {
	if b.consumed || !b.found {
		return false
	}
	b.consumed = true
	return true
}

func (b *PosMatcher) Updater() Updater { return nil }

// FullScanBinder handles a literal with unbound variables but no
// argument-position index available to narrow the scan (e.g. the first
// occurrence of a predicate with no previously-bound argument),
// degrading to a linear scan over the domain's matching-mode slice and
// trying Term.Match on each candidate — grounded on pldb.go's
// selectFacts linear scan fallback.
type FullScanBinder struct {
	Store  *symbol.Store
	Domain *domain.PredicateDomain
	Repr   term.Term
	Mode   Mode

	cursor int
	mark   int
}

func NewFullScanBinder(store *symbol.Store, d *domain.PredicateDomain, repr term.Term, mode Mode) *FullScanBinder {
	return &FullScanBinder{Store: store, Domain: d, Repr: repr, Mode: mode}
}

func (b *FullScanBinder) Init(trail *term.Trail) {
	b.cursor = 0
	b.mark = trail.Mark()
}

func (b *FullScanBinder) Next(trail *term.Trail) bool {
	for b.cursor < b.Domain.Size() {
		uid := b.cursor
		b.cursor++
		atom := b.Domain.AtomByUID(uint32(uid))
		if !modeAccepts(b.Mode, uint32(uid), b.Domain) {
			continue
		}
		trail.Undo(b.mark)
		if b.Repr.Match(b.Store, atom.Sym, trail) {
			return true
		}
	}
	return false
}

func (b *FullScanBinder) Updater() Updater { return nil }

func modeAccepts(mode Mode, uid uint32, d *domain.PredicateDomain) bool {
	switch mode {
	case ModeNew:
		return int(uid) >= d.IncOffset()
	case ModeOld:
		return int(uid) < d.IncOffset()
	default:
		return true
	}
}

// IndexedBinder narrows the scan using a secondary Index built over
// the literal's already-bound argument positions: it computes the
// lookup key once from the currently-bound variables, fetches the
// matching uid bucket, and then tries Term.Match on each (to bind any
// remaining free variables not covered by the index positions) —
// grounded on binders.hh's PosBinder<BindIndex>.
type IndexedBinder struct {
	Store     *symbol.Store
	Domain    *domain.PredicateDomain
	Index     *domain.Index
	BoundArgs []term.Term // the literal's argument terms at Index.Positions, in order
	Repr      term.Term
	Mode      Mode

	// Log and Loc mirror PosMatcher's: set by the literal layer so Init
	// can report an arithmetic-undefined bound argument before dropping
	// the match.
	Log *logging.Logger
	Loc logging.Location

	bucket []uint32
	pos    int
	mark   int
}

func NewIndexedBinder(store *symbol.Store, d *domain.PredicateDomain, idx *domain.Index, boundArgs []term.Term, repr term.Term, mode Mode) *IndexedBinder {
	return &IndexedBinder{Store: store, Domain: d, Index: idx, BoundArgs: boundArgs, Repr: repr, Mode: mode}
}

func (b *IndexedBinder) Init(trail *term.Trail) {
	b.bucket = nil
	b.pos = 0
	b.mark = trail.Mark()

	vals := make([]symbol.Symbol, len(b.BoundArgs))
	for i, a := range b.BoundArgs {
		var undefined bool
		v, ok := a.Eval(b.Store, &undefined)
		if !ok {
			if undefined {
				warnOperationUndefined(b.Log, b.Loc, "arithmetic operation undefined evaluating "+b.Repr.String(b.Store))
			}
			return
		}
		vals[i] = v
	}
	key := b.Domain.KeyForValues(vals)
	b.bucket = b.Index.Lookup(key)
}

func (b *IndexedBinder) Next(trail *term.Trail) bool {
	for b.pos < len(b.bucket) {
		uid := b.bucket[b.pos]
		b.pos++
		if !modeAccepts(b.Mode, uid, b.Domain) {
			continue
		}
		trail.Undo(b.mark)
		atom := b.Domain.AtomByUID(uid)
		if b.Repr.Match(b.Store, atom.Sym, trail) {
			return true
		}
	}
	return false
}

func (b *IndexedBinder) Updater() Updater {
	return indexUpdater{domain: b.Domain, index: b.Index}
}

// indexUpdater streams freshly-derived atoms into the bound index
// before each grounding round, the Go counterpart of PosMatcher's
// IndexUpdater half in binders.hh.
type indexUpdater struct {
	domain *domain.PredicateDomain
	index  *domain.Index
}

func (u indexUpdater) Update() {
	u.domain.Update(u.index, nil)
}
