package binder

import (
	"groundcore/domain"
	"groundcore/logging"
	"groundcore/symbol"
	"groundcore/term"
)

// Negation is the binder for a negative or double-negated predicate
// literal: it never binds a variable (safety guarantees every variable
// in repr is already bound), and yields a single match iff the target
// atom's definedness matches what the NAF sign requires (spec §4.3:
// "Predicate negative / double-negated: singleton match iff the atom
// is defined/undefined as required").
type Negation struct {
	Store      *symbol.Store
	Domain     *domain.PredicateDomain
	Repr       term.Term
	DoubleNeg  bool // `not not p(X)` requires defined; plain `not p(X)` requires undefined

	// Log and Loc mirror PosMatcher's (spec §7): an arithmetic-undefined
	// repr inside a negative literal is reported before it is treated
	// as simply not matching.
	Log *logging.Logger
	Loc logging.Location

	consumed bool
	ok       bool
}

func NewNegation(store *symbol.Store, d *domain.PredicateDomain, repr term.Term, doubleNeg bool) *Negation {
	return &Negation{Store: store, Domain: d, Repr: repr, DoubleNeg: doubleNeg}
}

func (b *Negation) Init(trail *term.Trail) {
	b.consumed = false
	var undefined bool
	sym, ok := b.Repr.Eval(b.Store, &undefined)
	if !ok {
		if undefined {
			warnOperationUndefined(b.Log, b.Loc, "arithmetic operation undefined evaluating "+b.Repr.String(b.Store))
		}
		b.ok = false
		return
	}
	atom, found := b.Domain.Find(sym)
	defined := found && atom.Defined
	b.ok = defined == b.DoubleNeg
}

func (b *Negation) Next(trail *term.Trail) bool {
	if b.consumed || !b.ok {
		return false
	}
	b.consumed = true
	return true
}

func (b *Negation) Updater() Updater { return nil }
