package binder

import (
	"groundcore/logging"
	"groundcore/symbol"
	"groundcore/term"
)

// RelOp is a comparison relation literal's operator (spec §3: relation
// literals `X < Y`, `X = Y`, etc., distinct from the arithmetic term
// operators in package term).
type RelOp uint8

const (
	RelEq RelOp = iota
	RelNe
	RelLt
	RelLe
	RelGt
	RelGe
)

// EqualityBinder handles both roles a relation literal plays in the
// body: an assignment (one side is a single unbound variable — bind it
// to the other side's value) or a test (both sides already bound —
// accept or reject once). Grounded on original_source's make_binder
// distinguishing a literal with zero remaining unbound occurrences (a
// one-shot Matcher) from one that still needs to write a variable.
type EqualityBinder struct {
	Store  *symbol.Store
	Op     RelOp
	Lhs    term.Term
	Rhs    term.Term
	Assign *term.VarRef // non-nil when Lhs or Rhs is this bare unbound variable

	// Log and Loc mirror PosMatcher's (spec §7): an arithmetic-undefined
	// side is reported before the comparison is treated as a non-match.
	Log *logging.Logger
	Loc logging.Location

	done bool
}

func NewEqualityBinder(store *symbol.Store, op RelOp, lhs, rhs term.Term) *EqualityBinder {
	b := &EqualityBinder{Store: store, Op: op, Lhs: lhs, Rhs: rhs}
	if op == RelEq {
		if v, ok := lhs.(*term.VarRef); ok && !v.Cell.Bound() {
			b.Assign = v
			b.Rhs = rhs
		} else if v, ok := rhs.(*term.VarRef); ok && !v.Cell.Bound() {
			b.Assign = v
			b.Rhs = lhs
		}
	}
	return b
}

func (b *EqualityBinder) Init(trail *term.Trail) { b.done = false }

func (b *EqualityBinder) Next(trail *term.Trail) bool {
	if b.done {
		return false
	}
	b.done = true

	if b.Assign != nil {
		var undefined bool
		v, ok := b.Rhs.Eval(b.Store, &undefined)
		if !ok {
			if undefined {
				warnOperationUndefined(b.Log, b.Loc, "arithmetic operation undefined evaluating "+b.Rhs.String(b.Store))
			}
			return false
		}
		return b.Assign.Match(b.Store, v, trail)
	}

	var undefined bool
	lv, ok := b.Lhs.Eval(b.Store, &undefined)
	if !ok {
		if undefined {
			warnOperationUndefined(b.Log, b.Loc, "arithmetic operation undefined evaluating "+b.Lhs.String(b.Store))
		}
		return false
	}
	rv, ok := b.Rhs.Eval(b.Store, &undefined)
	if !ok {
		if undefined {
			warnOperationUndefined(b.Log, b.Loc, "arithmetic operation undefined evaluating "+b.Rhs.String(b.Store))
		}
		return false
	}
	cmp := b.Store.Compare(lv, rv)
	switch b.Op {
	case RelEq:
		return cmp == 0
	case RelNe:
		return cmp != 0
	case RelLt:
		return cmp < 0
	case RelLe:
		return cmp <= 0
	case RelGt:
		return cmp > 0
	case RelGe:
		return cmp >= 0
	default:
		return false
	}
}

func (b *EqualityBinder) Updater() Updater { return nil }

// RangeBinder enumerates L..R as candidate bindings for an unbound
// variable once both bounds evaluate to ground integers (a range used
// directly as a relation literal's body, as opposed to a range nested
// inside a term — spec §3, §4.3's range binder).
type RangeBinder struct {
	Store *symbol.Store
	Lo    term.Term
	Hi    term.Term
	Var   *term.VarRef

	// Log and Loc let Init report the non-integer-bound boundary case
	// of spec §4.3/§8 ("X=L..R with L or R non-integer: zero matches +
	// one warning") before yielding zero matches. The symmetric L>R
	// case (both bounds ground integers, just an empty interval) stays
	// silent, matching the spec's explicit exception.
	Log *logging.Logger
	Loc logging.Location

	cur, hi int32
	ok      bool
	mark    int
}

func NewRangeBinder(store *symbol.Store, lo, hi term.Term, v *term.VarRef) *RangeBinder {
	return &RangeBinder{Store: store, Lo: lo, Hi: hi, Var: v}
}

func (b *RangeBinder) Init(trail *term.Trail) {
	b.mark = trail.Mark()
	var undefLo, undefHi bool
	lo, okLo := b.Lo.Eval(b.Store, &undefLo)
	hi, okHi := b.Hi.Eval(b.Store, &undefHi)
	var loN, hiN int32
	var okLoN, okHiN bool
	if okLo {
		loN, okLoN = b.Store.Num(lo)
	}
	if okHi {
		hiN, okHiN = b.Store.Num(hi)
	}
	b.ok = okLo && okHi && okLoN && okHiN
	if b.ok {
		b.cur, b.hi = loN, hiN
		return
	}
	// A bound that evaluated but isn't an integer (okLo/okHi true, Num
	// false) is the non-integer boundary case and must warn. A bound
	// that failed to evaluate at all due to an arithmetic type error
	// (undefLo/undefHi) is the same operation-undefined case as
	// elsewhere. Neither condition covers a merely-unbound bound, which
	// safety analysis should never let through to a range literal.
	if (okLo && !okLoN) || (okHi && !okHiN) {
		warnOperationUndefined(b.Log, b.Loc, "range bound "+b.Lo.String(b.Store)+".."+b.Hi.String(b.Store)+" is not an integer")
	} else if undefLo || undefHi {
		warnOperationUndefined(b.Log, b.Loc, "arithmetic operation undefined evaluating range bound "+b.Lo.String(b.Store)+".."+b.Hi.String(b.Store))
	}
}

func (b *RangeBinder) Next(trail *term.Trail) bool {
	if !b.ok || b.cur > b.hi {
		return false
	}
	trail.Undo(b.mark)
	val := b.Store.CreateNum(b.cur)
	b.cur++
	return b.Var.Match(b.Store, val, trail)
}

func (b *RangeBinder) Updater() Updater { return nil }
