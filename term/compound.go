package term

import (
	"strings"

	"groundcore/symbol"
)

// FunctionTerm constructs `name(args...)`, optionally classically negated.
type FunctionTerm struct {
	Name string
	Args []Term
	Sign bool
}

func (t *FunctionTerm) Collect(occs *[]Occurrence, isBinding bool) {
	for _, a := range t.Args {
		a.Collect(occs, isBinding)
	}
}

func (t *FunctionTerm) BindVars(bound map[string]bool) {
	for _, a := range t.Args {
		a.BindVars(bound)
	}
}

func (t *FunctionTerm) Eval(store *symbol.Store, undefined *bool) (symbol.Symbol, bool) {
	args := make([]symbol.Symbol, len(t.Args))
	for i, a := range t.Args {
		v, ok := a.Eval(store, undefined)
		if !ok {
			return symbol.Symbol{}, false
		}
		args[i] = v
	}
	return store.CreateFun(t.Name, args, t.Sign), true
}

func (t *FunctionTerm) Match(store *symbol.Store, sym symbol.Symbol, trail *Trail) bool {
	name, ok := store.Name(sym)
	if !ok || name != t.Name {
		return false
	}
	sign, _ := store.Sign(sym)
	if sign != t.Sign {
		return false
	}
	args, _ := store.Args(sym)
	if len(args) != len(t.Args) {
		return false
	}
	for i, a := range t.Args {
		if !a.Match(store, args[i], trail) {
			return false
		}
	}
	return true
}

func (t *FunctionTerm) Clone() Term {
	args := make([]Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Clone()
	}
	return &FunctionTerm{Name: t.Name, Args: args, Sign: t.Sign}
}

func (t *FunctionTerm) RenameVars(rename map[string]*VarCell) Term {
	args := make([]Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.RenameVars(rename)
	}
	return &FunctionTerm{Name: t.Name, Args: args, Sign: t.Sign}
}

func (t *FunctionTerm) Replace(defines map[string]Term) Term {
	args := make([]Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Replace(defines)
	}
	return &FunctionTerm{Name: t.Name, Args: args, Sign: t.Sign}
}

func (t *FunctionTerm) GTerm() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.GTerm()
	}
	prefix := ""
	if t.Sign {
		prefix = "-"
	}
	return prefix + t.Name + "(" + strings.Join(parts, ",") + ")"
}

func (t *FunctionTerm) String(store *symbol.Store) string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String(store)
	}
	prefix := ""
	if t.Sign {
		prefix = "-"
	}
	if len(t.Args) == 0 {
		return prefix + t.Name
	}
	return prefix + t.Name + "(" + strings.Join(parts, ",") + ")"
}

// Expand lifts pool/range arguments into a cartesian product of concrete
// FunctionTerms. Only arguments whose Expand set is statically
// determinable (no dependency on variables bound later in the body) are
// supported; see package doc and DESIGN.md for the scope decision.
func (t *FunctionTerm) Expand(store *symbol.Store) ([]Term, bool) {
	return expandArgs(store, t.Args, func(args []Term) Term {
		return &FunctionTerm{Name: t.Name, Args: args, Sign: t.Sign}
	})
}

// TupleTerm constructs an unnamed tuple `(args...)`.
type TupleTerm struct {
	Args []Term
}

func (t *TupleTerm) Collect(occs *[]Occurrence, isBinding bool) {
	for _, a := range t.Args {
		a.Collect(occs, isBinding)
	}
}

func (t *TupleTerm) BindVars(bound map[string]bool) {
	for _, a := range t.Args {
		a.BindVars(bound)
	}
}

func (t *TupleTerm) Eval(store *symbol.Store, undefined *bool) (symbol.Symbol, bool) {
	args := make([]symbol.Symbol, len(t.Args))
	for i, a := range t.Args {
		v, ok := a.Eval(store, undefined)
		if !ok {
			return symbol.Symbol{}, false
		}
		args[i] = v
	}
	return store.CreateTuple(args), true
}

func (t *TupleTerm) Match(store *symbol.Store, sym symbol.Symbol, trail *Trail) bool {
	name, ok := store.Name(sym)
	if !ok || name != "" {
		return false
	}
	args, _ := store.Args(sym)
	if len(args) != len(t.Args) {
		return false
	}
	for i, a := range t.Args {
		if !a.Match(store, args[i], trail) {
			return false
		}
	}
	return true
}

func (t *TupleTerm) Clone() Term {
	args := make([]Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Clone()
	}
	return &TupleTerm{Args: args}
}

func (t *TupleTerm) RenameVars(rename map[string]*VarCell) Term {
	args := make([]Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.RenameVars(rename)
	}
	return &TupleTerm{Args: args}
}

func (t *TupleTerm) Replace(defines map[string]Term) Term {
	args := make([]Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Replace(defines)
	}
	return &TupleTerm{Args: args}
}

func (t *TupleTerm) GTerm() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.GTerm()
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func (t *TupleTerm) String(store *symbol.Store) string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String(store)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func (t *TupleTerm) Expand(store *symbol.Store) ([]Term, bool) {
	return expandArgs(store, t.Args, func(args []Term) Term {
		return &TupleTerm{Args: args}
	})
}

// expandArgs computes the cartesian product of each argument's own
// Expand() set and rebuilds one compound term per combination via build.
func expandArgs(store *symbol.Store, args []Term, build func([]Term) Term) ([]Term, bool) {
	if len(args) == 0 {
		return []Term{build(nil)}, true
	}
	perArg := make([][]Term, len(args))
	for i, a := range args {
		alts, ok := Expand(store, a)
		if !ok {
			return nil, false
		}
		perArg[i] = alts
	}
	combos := [][]Term{{}}
	for _, alts := range perArg {
		next := make([][]Term, 0, len(combos)*len(alts))
		for _, c := range combos {
			for _, alt := range alts {
				row := append(append([]Term(nil), c...), alt)
				next = append(next, row)
			}
		}
		combos = next
	}
	out := make([]Term, len(combos))
	for i, c := range combos {
		out[i] = build(c)
	}
	return out, true
}

// PoolTerm is `(a;b;c)`: each alternative independently denotes a
// possible value for this argument position.
type PoolTerm struct {
	Alts []Term
}

func (t *PoolTerm) Collect(occs *[]Occurrence, isBinding bool) {
	for _, a := range t.Alts {
		a.Collect(occs, isBinding)
	}
}

func (t *PoolTerm) BindVars(bound map[string]bool) {
	for _, a := range t.Alts {
		a.BindVars(bound)
	}
}

// Eval is undefined for a bare pool: pools must be lifted via Expand
// before grounding reaches a context that evaluates a single Symbol.
// This is a structural failure, not an arithmetic type error, so
// undefined is left untouched.
func (t *PoolTerm) Eval(store *symbol.Store, undefined *bool) (symbol.Symbol, bool) {
	return symbol.Symbol{}, false
}

func (t *PoolTerm) Match(store *symbol.Store, sym symbol.Symbol, trail *Trail) bool {
	for _, a := range t.Alts {
		mark := trail.Mark()
		if a.Match(store, sym, trail) {
			return true
		}
		trail.Undo(mark)
	}
	return false
}

func (t *PoolTerm) Clone() Term {
	alts := make([]Term, len(t.Alts))
	for i, a := range t.Alts {
		alts[i] = a.Clone()
	}
	return &PoolTerm{Alts: alts}
}

func (t *PoolTerm) RenameVars(rename map[string]*VarCell) Term {
	alts := make([]Term, len(t.Alts))
	for i, a := range t.Alts {
		alts[i] = a.RenameVars(rename)
	}
	return &PoolTerm{Alts: alts}
}

func (t *PoolTerm) Replace(defines map[string]Term) Term {
	alts := make([]Term, len(t.Alts))
	for i, a := range t.Alts {
		alts[i] = a.Replace(defines)
	}
	return &PoolTerm{Alts: alts}
}

func (t *PoolTerm) GTerm() string { return "pool" }

func (t *PoolTerm) String(store *symbol.Store) string {
	parts := make([]string, len(t.Alts))
	for i, a := range t.Alts {
		parts[i] = a.String(store)
	}
	return "(" + strings.Join(parts, ";") + ")"
}

func (t *PoolTerm) Expand(store *symbol.Store) ([]Term, bool) {
	var out []Term
	for _, a := range t.Alts {
		alts, ok := Expand(store, a)
		if !ok {
			return nil, false
		}
		out = append(out, alts...)
	}
	return out, true
}

// RangeTerm is `Lo..Hi` used as a subterm (as opposed to the top-level
// range LITERAL `X = L..R` handled by package literal/binder). Eval is
// undefined for the same reason as PoolTerm: use Expand.
type RangeTerm struct {
	Lo, Hi Term
}

func (t *RangeTerm) Collect(occs *[]Occurrence, isBinding bool) {
	t.Lo.Collect(occs, false)
	t.Hi.Collect(occs, false)
}

func (t *RangeTerm) BindVars(bound map[string]bool) {
	t.Lo.BindVars(bound)
	t.Hi.BindVars(bound)
}

// Eval is undefined for a bare range for the same structural reason as
// PoolTerm: use Expand.
func (t *RangeTerm) Eval(store *symbol.Store, undefined *bool) (symbol.Symbol, bool) {
	return symbol.Symbol{}, false
}

func (t *RangeTerm) Match(store *symbol.Store, sym symbol.Symbol, trail *Trail) bool {
	lo, ok := t.Lo.Eval(store, nil)
	if !ok {
		return false
	}
	hi, ok := t.Hi.Eval(store, nil)
	if !ok {
		return false
	}
	loi, ok := store.Num(lo)
	if !ok {
		return false
	}
	hii, ok := store.Num(hi)
	if !ok {
		return false
	}
	v, ok := store.Num(sym)
	if !ok {
		return false
	}
	return v >= loi && v <= hii
}

func (t *RangeTerm) Clone() Term { return &RangeTerm{Lo: t.Lo.Clone(), Hi: t.Hi.Clone()} }

func (t *RangeTerm) RenameVars(rename map[string]*VarCell) Term {
	return &RangeTerm{Lo: t.Lo.RenameVars(rename), Hi: t.Hi.RenameVars(rename)}
}

func (t *RangeTerm) Replace(defines map[string]Term) Term {
	return &RangeTerm{Lo: t.Lo.Replace(defines), Hi: t.Hi.Replace(defines)}
}

func (t *RangeTerm) GTerm() string { return "range" }

func (t *RangeTerm) String(store *symbol.Store) string {
	return t.Lo.String(store) + ".." + t.Hi.String(store)
}

// Expand requires both bounds to be evaluable without further variable
// bindings (i.e. ground at rule-construction time); a range depending on
// a body variable bound later must instead be grounded dynamically via
// the RangeLiteral binder (package literal), not statically expanded.
func (t *RangeTerm) Expand(store *symbol.Store) ([]Term, bool) {
	lo, ok := t.Lo.Eval(store, nil)
	if !ok {
		return nil, false
	}
	hi, ok := t.Hi.Eval(store, nil)
	if !ok {
		return nil, false
	}
	loi, ok := store.Num(lo)
	if !ok {
		return nil, false
	}
	hii, ok := store.Num(hi)
	if !ok {
		return nil, false
	}
	out := make([]Term, 0, max0(int(hii-loi)+1))
	for v := loi; v <= hii; v++ {
		out = append(out, NewValueTerm(store.CreateNum(v)))
	}
	return out, true
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
