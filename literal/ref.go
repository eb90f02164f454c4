package literal

import (
	"groundcore/binder"
	"groundcore/domain"
	"groundcore/symbol"
	"groundcore/term"
)

// RefKind distinguishes what completed-atom domain a Ref literal
// targets; all four kinds share the same binder behavior (spec §4.7:
// BodyAggregate/Conjunction/Disjunction/Theory each "reference a
// complete atom" the same way a predicate literal references a
// PredicateDomain atom).
type RefKind uint8

const (
	RefAggregate RefKind = iota
	RefConjunction
	RefDisjunction
	RefTheory
)

// Ref is a body literal that names a single already-ground complete
// atom owned by an aggregate/conjunction/disjunction/theory Statement
// of package ground, rather than a plain predicate.
// Grounded on original_source's treatment of these as ordinary
// PosMatcher/Matcher targets over an AbstractDomain<Atom> specialized
// to the aggregate/conjunction/etc. atom type.
type Ref struct {
	domainRef
	Kind      RefKind
	Atom      term.Term // always ground by construction — the Statement assigns the atom's symbol itself
	Sign      Sign
	Recursive bool
}

func NewRef(store *symbol.Store, d *domain.PredicateDomain, kind RefKind, atom term.Term, sign Sign, recursive bool) *Ref {
	return &Ref{domainRef: domainRef{Store: store, Domain: d}, Kind: kind, Atom: atom, Sign: sign, Recursive: recursive}
}

func (l *Ref) IsRecursive() bool { return l.Recursive }

func (l *Ref) Occurrence() Occurrence {
	if l.Sign == SignPos {
		return OccPositive
	}
	return OccNegative
}

func (l *Ref) Collect(occs *[]term.Occurrence) {
	l.Atom.Collect(occs, false)
}

// Score is always 0 or Unsafe: a Ref's atom term is built by its owning
// Statement with every variable already resolved from the enclosing
// rule's bindings, so it never introduces a new variable.
func (l *Ref) Score(bound map[string]bool) int {
	if isFullyBound(l.Atom, bound) {
		return 0
	}
	return Unsafe
}

func (l *Ref) Index(mode binder.Mode) binder.Binder {
	if l.Sign != SignPos {
		neg := binder.NewNegation(l.Store, l.Domain, l.Atom, l.Sign == SignNotNot)
		neg.Log, neg.Loc = l.Log, l.Loc
		return neg
	}
	pm := binder.NewPosMatcher(l.Store, l.Domain, l.Atom, mode)
	pm.Log, pm.Loc = l.Log, l.Loc
	return pm
}

func (l *Ref) ToOutput() (symbol.Symbol, bool, bool) {
	sym, ok := l.Atom.Eval(l.Store, nil)
	if !ok {
		return symbol.Symbol{}, false, false
	}
	atom, found := l.Domain.Find(sym)
	if !found {
		return sym, false, false
	}
	return sym, atom.Fact, true
}
