package literal

import (
	"groundcore/binder"
	"groundcore/domain"
	"groundcore/symbol"
	"groundcore/term"
)

// Sign is a predicate literal's NAF classification (spec §3: "signed:
// pos|not|not not").
type Sign uint8

const (
	SignPos Sign = iota
	SignNot
	SignNotNot
)

// Predicate is a predicate literal over a single PredicateDomain, with
// a term template giving its arguments (spec §4.3's policy table: the
// positive/negative/double-negated cases).
type Predicate struct {
	domainRef
	Repr      *term.FunctionTerm
	Sign      Sign
	Recursive bool
}

func NewPredicate(store *symbol.Store, d *domain.PredicateDomain, repr *term.FunctionTerm, sign Sign, recursive bool) *Predicate {
	return &Predicate{domainRef: domainRef{Store: store, Domain: d}, Repr: repr, Sign: sign, Recursive: recursive}
}

func (l *Predicate) IsRecursive() bool { return l.Recursive }

func (l *Predicate) Occurrence() Occurrence {
	switch l.Sign {
	case SignPos:
		return OccPositive
	default:
		return OccNegative
	}
}

func (l *Predicate) Collect(occs *[]term.Occurrence) {
	collectFunctionArgs(l.Repr.Args, l.Sign == SignPos, occs)
}

func (l *Predicate) Score(bound map[string]bool) int {
	if l.Sign != SignPos {
		if isFullyBound(l.Repr, bound) {
			return 0
		}
		return Unsafe
	}
	unbound := unboundPositions(l.Repr.Args, bound)
	if len(unbound) == 0 {
		return 0
	}
	// Prefer literals over smaller domains and with fewer remaining
	// unbound positions — a cheap proxy for expected fan-out (spec
	// §4.4 step 2c: "lower score = smaller expected fan-out").
	return l.Domain.Size()*len(unbound) + 1
}

func (l *Predicate) Index(mode binder.Mode) binder.Binder {
	if l.Sign != SignPos {
		neg := binder.NewNegation(l.Store, l.Domain, l.Repr, l.Sign == SignNotNot)
		neg.Log, neg.Loc = l.Log, l.Loc
		return neg
	}
	bound := boundVarSet(l.Repr.Args)
	positions := boundPositions(l.Repr.Args, bound)
	if len(positions) == 0 {
		return binder.NewFullScanBinder(l.Store, l.Domain, l.Repr, mode)
	}
	if len(positions) == len(l.Repr.Args) {
		pm := binder.NewPosMatcher(l.Store, l.Domain, l.Repr, mode)
		pm.Log, pm.Loc = l.Log, l.Loc
		return pm
	}
	idx := l.Domain.Add(positions)
	boundArgs := make([]term.Term, len(positions))
	for i, p := range positions {
		boundArgs[i] = l.Repr.Args[p]
	}
	ib := binder.NewIndexedBinder(l.Store, l.Domain, idx, boundArgs, l.Repr, mode)
	ib.Log, ib.Loc = l.Log, l.Loc
	return ib
}

func (l *Predicate) ToOutput() (symbol.Symbol, bool, bool) {
	sym, ok := l.Repr.Eval(l.Store, nil)
	if !ok {
		return symbol.Symbol{}, false, false
	}
	atom, found := l.Domain.Find(sym)
	if !found {
		return sym, false, false
	}
	return sym, atom.Fact, true
}

// boundVarSet reports, for each argument position, whether every
// variable it contains is ALREADY bound under the current assignment
// (VarCell.Bound()) — used by Index once linearization has committed
// to running this literal now, as opposed to Score's static bound-name
// set used while still planning the order.
func boundVarSet(args []term.Term) map[string]bool {
	bound := make(map[string]bool)
	for _, a := range args {
		var occs []term.Occurrence
		a.Collect(&occs, false)
		for _, o := range occs {
			if o.Cell.Bound() {
				bound[o.Cell.Name] = true
			}
		}
	}
	return bound
}
