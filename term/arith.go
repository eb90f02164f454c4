package term

import "groundcore/symbol"

// setUndefined records an arithmetic type error or Div/Mod-by-zero on
// the caller's undefined flag, tolerating a nil pointer for callers
// that only need the ok/not-ok result (spec §3: eval's undefined_out
// distinguishes this case from a merely-unbound variable).
func setUndefined(undefined *bool) {
	if undefined != nil {
		*undefined = true
	}
}

// UnaryOp enumerates the unary arithmetic operators.
type UnaryOp uint8

const (
	Neg UnaryOp = iota // -X
	Abs                // |X|
)

// BinaryOp enumerates the binary arithmetic operators.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Pow
	BitAnd
	BitOr
	BitXor
)

// UnaryTerm applies a unary arithmetic operator to X.
type UnaryTerm struct {
	Op UnaryOp
	X  Term
}

func (t *UnaryTerm) Collect(occs *[]Occurrence, isBinding bool) { t.X.Collect(occs, false) }
func (t *UnaryTerm) BindVars(bound map[string]bool)             { t.X.BindVars(bound) }

func (t *UnaryTerm) Eval(store *symbol.Store, undefined *bool) (symbol.Symbol, bool) {
	x, ok := t.X.Eval(store, undefined)
	if !ok {
		return symbol.Symbol{}, false
	}
	xi, ok := store.Num(x)
	if !ok {
		setUndefined(undefined)
		return symbol.Symbol{}, false
	}
	switch t.Op {
	case Neg:
		return store.CreateNum(-xi), true
	case Abs:
		if xi < 0 {
			xi = -xi
		}
		return store.CreateNum(xi), true
	default:
		setUndefined(undefined)
		return symbol.Symbol{}, false
	}
}

func (t *UnaryTerm) Match(store *symbol.Store, sym symbol.Symbol, trail *Trail) bool {
	// Arithmetic terms are evaluation-only: they never bind a variable.
	v, ok := t.Eval(store, nil)
	return ok && v == sym
}

func (t *UnaryTerm) Clone() Term { return &UnaryTerm{Op: t.Op, X: t.X.Clone()} }

func (t *UnaryTerm) RenameVars(rename map[string]*VarCell) Term {
	return &UnaryTerm{Op: t.Op, X: t.X.RenameVars(rename)}
}

func (t *UnaryTerm) Replace(defines map[string]Term) Term {
	return &UnaryTerm{Op: t.Op, X: t.X.Replace(defines)}
}

func (t *UnaryTerm) GTerm() string { return "u(" + t.X.GTerm() + ")" }

func (t *UnaryTerm) String(store *symbol.Store) string {
	switch t.Op {
	case Abs:
		return "|" + t.X.String(store) + "|"
	default:
		return "-" + t.X.String(store)
	}
}

// BinaryTerm applies a binary arithmetic operator to X and Y.
type BinaryTerm struct {
	Op   BinaryOp
	X, Y Term
}

func (t *BinaryTerm) Collect(occs *[]Occurrence, isBinding bool) {
	t.X.Collect(occs, false)
	t.Y.Collect(occs, false)
}

func (t *BinaryTerm) BindVars(bound map[string]bool) {
	t.X.BindVars(bound)
	t.Y.BindVars(bound)
}

func (t *BinaryTerm) Eval(store *symbol.Store, undefined *bool) (symbol.Symbol, bool) {
	x, ok := t.X.Eval(store, undefined)
	if !ok {
		return symbol.Symbol{}, false
	}
	y, ok := t.Y.Eval(store, undefined)
	if !ok {
		return symbol.Symbol{}, false
	}
	xi, ok := store.Num(x)
	if !ok {
		setUndefined(undefined)
		return symbol.Symbol{}, false
	}
	yi, ok := store.Num(y)
	if !ok {
		setUndefined(undefined)
		return symbol.Symbol{}, false
	}
	switch t.Op {
	case Add:
		return store.CreateNum(xi + yi), true
	case Sub:
		return store.CreateNum(xi - yi), true
	case Mul:
		return store.CreateNum(xi * yi), true
	case Div:
		if yi == 0 {
			setUndefined(undefined)
			return symbol.Symbol{}, false
		}
		return store.CreateNum(xi / yi), true
	case Mod:
		if yi == 0 {
			setUndefined(undefined)
			return symbol.Symbol{}, false
		}
		return store.CreateNum(xi % yi), true
	case Pow:
		return store.CreateNum(ipow(xi, yi)), true
	case BitAnd:
		return store.CreateNum(xi & yi), true
	case BitOr:
		return store.CreateNum(xi | yi), true
	case BitXor:
		return store.CreateNum(xi ^ yi), true
	default:
		setUndefined(undefined)
		return symbol.Symbol{}, false
	}
}

func ipow(base, exp int32) int32 {
	if exp < 0 {
		return 0
	}
	r := int32(1)
	for i := int32(0); i < exp; i++ {
		r *= base
	}
	return r
}

func (t *BinaryTerm) Match(store *symbol.Store, sym symbol.Symbol, trail *Trail) bool {
	v, ok := t.Eval(store, nil)
	return ok && v == sym
}

func (t *BinaryTerm) Clone() Term {
	return &BinaryTerm{Op: t.Op, X: t.X.Clone(), Y: t.Y.Clone()}
}

func (t *BinaryTerm) RenameVars(rename map[string]*VarCell) Term {
	return &BinaryTerm{Op: t.Op, X: t.X.RenameVars(rename), Y: t.Y.RenameVars(rename)}
}

func (t *BinaryTerm) Replace(defines map[string]Term) Term {
	return &BinaryTerm{Op: t.Op, X: t.X.Replace(defines), Y: t.Y.Replace(defines)}
}

func (t *BinaryTerm) GTerm() string { return "b(" + t.X.GTerm() + "," + t.Y.GTerm() + ")" }

var binaryOpText = map[BinaryOp]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "\\", Pow: "**",
	BitAnd: "&", BitOr: "?", BitXor: "^",
}

func (t *BinaryTerm) String(store *symbol.Store) string {
	return t.X.String(store) + binaryOpText[t.Op] + t.Y.String(store)
}
