package literal

import (
	"groundcore/binder"
	"groundcore/logging"
	"groundcore/symbol"
	"groundcore/term"
)

// Relation is a comparison literal `Lhs op Rhs` (spec §3). When op is
// `=` and exactly one side is a bare unbound variable it acts as an
// assignment; otherwise both sides must already be bound and it is a
// pure test.
type Relation struct {
	Store *symbol.Store
	Op    binder.RelOp
	Lhs   term.Term
	Rhs   term.Term

	Log *logging.Logger
	Loc logging.Location
}

func NewRelation(store *symbol.Store, op binder.RelOp, lhs, rhs term.Term) *Relation {
	return &Relation{Store: store, Op: op, Lhs: lhs, Rhs: rhs}
}

func (l *Relation) SetLogger(log *logging.Logger, loc logging.Location) {
	l.Log = log
	l.Loc = loc
}

func (l *Relation) IsRecursive() bool        { return false }
func (l *Relation) Occurrence() Occurrence   { return OccStratified }

func (l *Relation) Collect(occs *[]term.Occurrence) {
	canBind := l.assignVar() != nil
	l.Lhs.Collect(occs, canBind)
	l.Rhs.Collect(occs, canBind)
}

// assignVar returns the bare unbound-capable variable side of an
// equality comparison, if any.
func (l *Relation) assignVar() *term.VarRef {
	if l.Op != binder.RelEq {
		return nil
	}
	if v, ok := l.Lhs.(*term.VarRef); ok {
		return v
	}
	if v, ok := l.Rhs.(*term.VarRef); ok {
		return v
	}
	return nil
}

func (l *Relation) Score(bound map[string]bool) int {
	if v := l.assignVar(); v != nil && !bound[v.Cell.Name] {
		other := l.Lhs
		if l.Lhs == term.Term(v) {
			other = l.Rhs
		}
		if isFullyBound(other, bound) {
			return 0
		}
		return Unsafe
	}
	if isFullyBound(l.Lhs, bound) && isFullyBound(l.Rhs, bound) {
		return 0
	}
	return Unsafe
}

func (l *Relation) Index(mode binder.Mode) binder.Binder {
	eb := binder.NewEqualityBinder(l.Store, l.Op, l.Lhs, l.Rhs)
	eb.Log, eb.Loc = l.Log, l.Loc
	return eb
}

func (l *Relation) ToOutput() (symbol.Symbol, bool, bool) {
	return symbol.Symbol{}, true, true
}

// Range is `X = L..R` (spec §3), enumerating X over [L,R] once L and R
// are both ground integers.
type Range struct {
	Store *symbol.Store
	Var   *term.VarRef
	Lo    term.Term
	Hi    term.Term

	Log *logging.Logger
	Loc logging.Location
}

func NewRange(store *symbol.Store, v *term.VarRef, lo, hi term.Term) *Range {
	return &Range{Store: store, Var: v, Lo: lo, Hi: hi}
}

func (l *Range) SetLogger(log *logging.Logger, loc logging.Location) {
	l.Log = log
	l.Loc = loc
}

func (l *Range) IsRecursive() bool      { return false }
func (l *Range) Occurrence() Occurrence { return OccStratified }

func (l *Range) Collect(occs *[]term.Occurrence) {
	l.Var.Collect(occs, true)
	l.Lo.Collect(occs, false)
	l.Hi.Collect(occs, false)
}

func (l *Range) Score(bound map[string]bool) int {
	if bound[l.Var.Cell.Name] {
		return Unsafe // X already bound elsewhere: a range cannot re-test it (spec restricts X to be fresh)
	}
	if isFullyBound(l.Lo, bound) && isFullyBound(l.Hi, bound) {
		return 0
	}
	return Unsafe
}

func (l *Range) Index(mode binder.Mode) binder.Binder {
	rb := binder.NewRangeBinder(l.Store, l.Lo, l.Hi, l.Var)
	rb.Log, rb.Loc = l.Log, l.Loc
	return rb
}

func (l *Range) ToOutput() (symbol.Symbol, bool, bool) {
	return symbol.Symbol{}, true, true
}

// Script is `X = f(t1,...,tn)` (spec §3), evaluating an external
// callable once its arguments are ground and binding X to each
// returned symbol in turn.
type Script struct {
	Store *symbol.Store
	Call  binder.ScriptCall
	Name  string
	Args  []term.Term
	Var   *term.VarRef
}

func NewScript(store *symbol.Store, call binder.ScriptCall, name string, args []term.Term, v *term.VarRef) *Script {
	return &Script{Store: store, Call: call, Name: name, Args: args, Var: v}
}

func (l *Script) IsRecursive() bool      { return false }
func (l *Script) Occurrence() Occurrence { return OccStratified }

func (l *Script) Collect(occs *[]term.Occurrence) {
	l.Var.Collect(occs, true)
	for _, a := range l.Args {
		a.Collect(occs, false)
	}
}

func (l *Script) Score(bound map[string]bool) int {
	if bound[l.Var.Cell.Name] {
		return Unsafe
	}
	for _, a := range l.Args {
		if !isFullyBound(a, bound) {
			return Unsafe
		}
	}
	return 0
}

func (l *Script) Index(mode binder.Mode) binder.Binder {
	return binder.NewScriptBinder(l.Store, l.Call, l.Name, l.Args, l.Var)
}

func (l *Script) ToOutput() (symbol.Symbol, bool, bool) {
	return symbol.Symbol{}, true, true
}
