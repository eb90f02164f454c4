// Package term implements the non-ground term AST of spec §3: variable
// references sharing a mutable binding slot, value leaves, arithmetic and
// pool/range nodes, and function/tuple constructors.
//
// Grounded on gitrdm-gokando's core.go (the Term interface shape: String,
// Equal/structural-compare, Clone, IsVar) and pldb.go's isGround/termEqual
// helpers, generalized from miniKanren's single substitution map to
// spec's shared mutable VarCell per rule (design note §9: "Variables:
// each variable name in a rule is represented by a reference to a shared
// Symbol cell").
package term

import "groundcore/symbol"

// Occurrence records one textual occurrence of a variable within a term,
// tagged with whether that occurrence can bind the variable (spec §3:
// Literal.collect / Term.collect).
type Occurrence struct {
	Cell      *VarCell
	CanBind   bool
}

// Term is the common interface of every node in the non-ground term tree.
type Term interface {
	// Collect appends every variable occurrence in this subterm to occs,
	// tagging each with whether this position can bind (isBinding is the
	// caller's current binding context, e.g. false inside an arithmetic
	// expression since those only ever read variables).
	Collect(occs *[]Occurrence, isBinding bool)

	// BindVars marks the variables that occur in this subterm as bound
	// in the given set (used by safety analysis and by the "bind" step
	// that freezes a literal's remaining free variables before indexing).
	BindVars(bound map[string]bool)

	// Eval evaluates this subterm to a ground Symbol under the current
	// assignment (the VarCells' current bindings). ok is false either on
	// reference to an unbound variable, or on arithmetic type error /
	// division or modulo by zero (spec §3: Term.eval undefined_out). The
	// two cases are distinguished through undefined: callers that care
	// pass a non-nil *bool and it is set to true only in the second case,
	// never on a merely-unbound variable; callers that don't care (e.g.
	// Match) pass nil.
	Eval(store *symbol.Store, undefined *bool) (sym symbol.Symbol, ok bool)

	// Match unifies this subterm against sym, writing through unbound
	// variable cells and recording each newly bound cell on trail so the
	// caller can reverse the match (spec §5: "side effects must be
	// reversible").
	Match(store *symbol.Store, sym symbol.Symbol, trail *Trail) bool

	// Clone returns a deep structural copy; VarRefs in the clone point to
	// the SAME VarCell as the original (cloning does not introduce fresh
	// variables — see RenameVars for that).
	Clone() Term

	// RenameVars returns a copy with every VarRef redirected through
	// rename, creating a fresh VarCell the first time a name is seen.
	// Used when a literal needs its own private copy of a term's
	// variables (spec §4.4 linearization: building an index key clone).
	RenameVars(rename map[string]*VarCell) Term

	// Replace substitutes variables named in defines with the given
	// ground terms (used for aggregate/conjunction element instantiation
	// where a bound outer variable must be spliced into a condition).
	Replace(defines map[string]Term) Term

	// GTerm returns a canonical ground-skeleton string: the term's shape
	// with every VarRef replaced by a positional placeholder. Equal
	// skeletons group literal templates for index sharing (spec §3:
	// "gterm (ground-term skeleton for hashing)").
	GTerm() string

	// String renders the term as source text, resolving symbol names
	// through store.
	String(store *symbol.Store) string
}

// Expandable is implemented by term kinds that can denote more than one
// concrete term — pools `(a;b;c)` and ranges `L..R` used as a subterm
// (spec §3 lists both inside the Term tree). Expand returns the set of
// concrete alternatives; every other Term kind gets the default
// single-element expansion via ExpandDefault.
type Expandable interface {
	Expand(store *symbol.Store) ([]Term, bool)
}

// Expand returns every concrete alternative denoted by t, recursing into
// compound terms so that a pool/range nested inside a function or tuple
// argument is lifted into a cartesian product of concrete terms. ok is
// false if some nested range evaluates to a non-integer bound.
func Expand(store *symbol.Store, t Term) ([]Term, bool) {
	if e, ok := t.(Expandable); ok {
		return e.Expand(store)
	}
	return []Term{t}, true
}
