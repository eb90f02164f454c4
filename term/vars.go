package term

import "groundcore/symbol"

// VarCell is the shared mutable binding slot for one variable name within
// one rule. All VarRef occurrences of the same name in the same rule
// point at the same cell, so binding through one occurrence is visible at
// every other (spec §3).
type VarCell struct {
	Name  string
	bound bool
	value symbol.Symbol
}

// NewVarCell creates a fresh, unbound cell.
func NewVarCell(name string) *VarCell { return &VarCell{Name: name} }

// Bound reports whether the cell currently holds a value.
func (c *VarCell) Bound() bool { return c.bound }

// Value returns the cell's current value; ok is false if unbound.
func (c *VarCell) Value() (symbol.Symbol, bool) { return c.value, c.bound }

// Unbind clears the cell. Only the Instantiator (via Trail.Undo) should
// call this outside of test code — it is the one mutator of shared
// binding state (spec §5).
func (c *VarCell) Unbind() {
	c.bound = false
	c.value = symbol.Symbol{}
}

// bind sets the cell's value and records it on trail for later Undo.
func (c *VarCell) bind(sym symbol.Symbol, trail *Trail) {
	c.value = sym
	c.bound = true
	if trail != nil {
		trail.push(c)
	}
}

// Trail records the sequence of cells bound during one Match (or one
// chain of Matches) so the Instantiator can unwind a failed or exhausted
// branch in O(1) per binding, implementing the "guarded scope" discipline
// of spec §5: each successful next() acquires bindings valid until the
// next next() call or scope exit.
type Trail struct {
	cells []*VarCell
}

// Mark returns a checkpoint to later Undo back to.
func (t *Trail) Mark() int { return len(t.cells) }

// Undo unbinds every cell bound since mark, in reverse order.
func (t *Trail) Undo(mark int) {
	for i := len(t.cells) - 1; i >= mark; i-- {
		t.cells[i].Unbind()
	}
	t.cells = t.cells[:mark]
}

func (t *Trail) push(c *VarCell) { t.cells = append(t.cells, c) }

// VarRef is a Term that reads/writes a shared VarCell.
type VarRef struct {
	Cell *VarCell
}

// NewVarRef wraps a cell in a Term.
func NewVarRef(cell *VarCell) *VarRef { return &VarRef{Cell: cell} }

func (v *VarRef) Collect(occs *[]Occurrence, isBinding bool) {
	*occs = append(*occs, Occurrence{Cell: v.Cell, CanBind: isBinding})
}

func (v *VarRef) BindVars(bound map[string]bool) { bound[v.Cell.Name] = true }

func (v *VarRef) Eval(store *symbol.Store, undefined *bool) (symbol.Symbol, bool) {
	return v.Cell.Value()
}

func (v *VarRef) Match(store *symbol.Store, sym symbol.Symbol, trail *Trail) bool {
	if cur, ok := v.Cell.Value(); ok {
		return cur == sym
	}
	v.Cell.bind(sym, trail)
	return true
}

func (v *VarRef) Clone() Term { return &VarRef{Cell: v.Cell} }

func (v *VarRef) RenameVars(rename map[string]*VarCell) Term {
	cell, ok := rename[v.Cell.Name]
	if !ok {
		cell = NewVarCell(v.Cell.Name)
		rename[v.Cell.Name] = cell
	}
	return &VarRef{Cell: cell}
}

func (v *VarRef) Replace(defines map[string]Term) Term {
	if repl, ok := defines[v.Cell.Name]; ok {
		return repl
	}
	return v
}

func (v *VarRef) GTerm() string { return "_" }

func (v *VarRef) String(store *symbol.Store) string { return v.Cell.Name }

// ValueTerm is a ground Symbol leaf.
type ValueTerm struct {
	Sym symbol.Symbol
}

func NewValueTerm(sym symbol.Symbol) *ValueTerm { return &ValueTerm{Sym: sym} }

func (t *ValueTerm) Collect(occs *[]Occurrence, isBinding bool) {}
func (t *ValueTerm) BindVars(bound map[string]bool)             {}

func (t *ValueTerm) Eval(store *symbol.Store, undefined *bool) (symbol.Symbol, bool) { return t.Sym, true }

func (t *ValueTerm) Match(store *symbol.Store, sym symbol.Symbol, trail *Trail) bool {
	return t.Sym == sym
}

func (t *ValueTerm) Clone() Term { return &ValueTerm{Sym: t.Sym} }

func (t *ValueTerm) RenameVars(rename map[string]*VarCell) Term { return &ValueTerm{Sym: t.Sym} }

func (t *ValueTerm) Replace(defines map[string]Term) Term { return t }

func (t *ValueTerm) GTerm() string { return "v" }

func (t *ValueTerm) String(store *symbol.Store) string { return store.Format(t.Sym) }
