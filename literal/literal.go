// Package literal implements the body-literal kinds of spec §3/§4.3:
// predicate, relation, range, script, and the reference literals that
// point at an aggregate/conjunction/disjunction/theory-complete atom.
// Each kind knows how to score itself for linearization (§4.4) and how
// to produce a binder.Binder for the literal (§4.3's "policy by
// literal kind" table).
//
// Grounded on gitrdm-gokando's core.go Goal interface (Literal plays
// the same "one step of the search, given the current bindings" role
// that a Goal does in gokando, but explicitly decomposed into
// score/index/toOutput rather than a single opaque closure) and on
// original_source's gringo/ground/literals.hh class hierarchy, which
// this package collapses into tagged Go structs per design note §9.
package literal

import (
	"groundcore/binder"
	"groundcore/domain"
	"groundcore/logging"
	"groundcore/symbol"
	"groundcore/term"
)

// Occurrence classifies how a literal's atom contributes to the
// dependency graph used by stratification/SCC analysis (spec §4.7's
// analyze step).
type Occurrence uint8

const (
	OccPositive Occurrence = iota
	OccNegative
	OccStratified
)

// Unsafe is the sentinel Score result meaning "cannot be placed yet"
// (spec §4.4: "score = -1 means unsafe if attempted now").
const Unsafe = -1

// Literal is the common contract every body-literal kind satisfies.
type Literal interface {
	// IsRecursive reports whether this literal's target belongs to the
	// SCC currently being grounded (set by dependency analysis, read by
	// package safety to decide the NEW/OLD rotation of §4.6).
	IsRecursive() bool

	// Occurrence classifies this literal for stratification.
	Occurrence() Occurrence

	// Collect appends every variable occurrence in this literal to occs.
	Collect(occs *[]term.Occurrence)

	// Score estimates the cost of placing this literal next given the
	// variables already bound; Unsafe means some required variable
	// isn't bound and this literal cannot bind it either.
	Score(bound map[string]bool) int

	// Index builds the Binder that enumerates this literal's matches
	// under mode (NEW/OLD/ALL, meaningful only for recursive predicate
	// literals — every other kind ignores it).
	Index(mode binder.Mode) binder.Binder

	// ToOutput evaluates the literal's ground atom for backend emission,
	// reporting the atom symbol and whether it is a fact.
	ToOutput() (sym symbol.Symbol, isFact bool, ok bool)
}

// Loggable is implemented by literal kinds whose binder can drop a
// match due to an arithmetic-undefined evaluation (spec §7): the
// grounder wires a Logger and the owning rule's Location into every
// literal it builds that satisfies this interface, once both are known
// (a literal built directly in a test, with no call to SetLogger,
// simply drops such a match without reporting it).
type Loggable interface {
	SetLogger(log *logging.Logger, loc logging.Location)
}

// collectFunctionArgs appends the variable occurrences of a function
// literal's arguments, tagging them bindable only when canBind (a
// negative literal's occurrences never bind, per spec §4.3).
func collectFunctionArgs(args []term.Term, canBind bool, occs *[]term.Occurrence) {
	for _, a := range args {
		a.Collect(occs, canBind)
	}
}

// unboundPositions returns the argument positions of args whose
// variables are not all present in bound (a position counts as bound
// only if every variable occurring in it is already bound).
func unboundPositions(args []term.Term, bound map[string]bool) []int {
	var out []int
	for i, a := range args {
		if isFullyBound(a, bound) {
			continue
		}
		out = append(out, i)
	}
	return out
}

func boundPositions(args []term.Term, bound map[string]bool) []int {
	var out []int
	for i, a := range args {
		if isFullyBound(a, bound) {
			out = append(out, i)
		}
	}
	return out
}

func isFullyBound(t term.Term, bound map[string]bool) bool {
	var occs []term.Occurrence
	t.Collect(&occs, false)
	for _, o := range occs {
		if !bound[o.Cell.Name] {
			return false
		}
	}
	return true
}

// domainRef bundles the store and target domain shared by every
// concrete literal kind that names a predicate (predicate literals
// proper, and the aggregate/conjunction/disjunction/theory reference
// literals, which all resolve to a single complete atom the same way).
type domainRef struct {
	Store  *symbol.Store
	Domain *domain.PredicateDomain

	Log *logging.Logger
	Loc logging.Location
}

// SetLogger implements Loggable for every literal kind embedding
// domainRef (Predicate, Ref).
func (d *domainRef) SetLogger(log *logging.Logger, loc logging.Location) {
	d.Log = log
	d.Loc = loc
}
