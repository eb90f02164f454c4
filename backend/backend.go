// Package backend implements the Output translator and the abstract
// Backend sink of spec §2/§6: the wire-format-agnostic interface every
// concrete sink (text, aspif, smodels — the latter two explicitly out
// of scope per spec §1) implements, plus a Translator that assigns
// stable backend atom ids to domain.Atom values and drives a Backend
// from ground.Rule/Statement output.
//
// Grounded on original_source's libgringo/src/output/output.cc (the
// concrete call sequence a real grounder issues: initProgram/
// beginStep/endStep bracketing, rule/weightRule/external/heuristic/
// theory* calls in program-text order within an SCC) and on
// gitrdm-gokando's stream.go pull-based consumer shape, generalized
// here to a push sink instead of a pull iterator because the Backend
// is explicitly "write-only" per spec §6.
package backend

import "groundcore/domain"

// AtomID is a signed ground-atom reference in a Backend call: positive
// for a positive occurrence, negated for `not`. Atom id 0 is reserved
// as "always false"; id 1 conventionally as "true" (spec §6).
type AtomID int32

const (
	AtomFalse AtomID = 0
	AtomTrue  AtomID = 1
)

// WeightedLiteral pairs an AtomID with an integer weight, used by
// weightRule and minimize (spec §6).
type WeightedLiteral struct {
	Atom   AtomID
	Weight int
}

// HeuristicModifier selects which aspect of the solver's decision
// heuristic a heuristic() call biases (spec §6).
type HeuristicModifier uint8

const (
	HeuristicLevel HeuristicModifier = iota
	HeuristicSign
	HeuristicFactor
	HeuristicInit
	HeuristicTrue
	HeuristicFalse
)

// TheoryTermKind distinguishes the three theory-term shapes a theory
// backend accumulates (spec §6: "theoryTerm(id, …)").
type TheoryTermKind uint8

const (
	TheoryTermNumber TheoryTermKind = iota
	TheoryTermString
	TheoryTermFunction
)

// TheoryTerm is one entry of a theoryTerm() call.
type TheoryTerm struct {
	ID     int
	Kind   TheoryTermKind
	Number int
	String string
	Args   []int // argument theory-term ids, only for TheoryTermFunction
}

// TheoryGuard is the optional `term rel term` suffix of a theory atom.
type TheoryGuard struct {
	Op   string
	Term int
}

// Backend is the abstract, format-agnostic ground-output sink of spec
// §6. Every method corresponds to one named call in the spec's Backend
// list; implementations must tolerate being driven across multiple
// initProgram/beginStep/endStep brackets (incremental grounding,
// SPEC_FULL §13).
type Backend interface {
	InitProgram(incremental bool)
	BeginStep()
	EndStep()

	Rule(choice bool, head []AtomID, body []AtomID)
	WeightRule(choice bool, head []AtomID, lowerBound int, body []WeightedLiteral)
	Minimize(priority int, body []WeightedLiteral)
	Project(atoms []AtomID)
	External(atom AtomID, value domain.ExternalValue)
	Assume(literals []AtomID)
	Heuristic(atom AtomID, modifier HeuristicModifier, bias, priority int, condition []AtomID)
	AcycEdge(u, v AtomID, condition []AtomID)

	TheoryTerm(term TheoryTerm)
	TheoryElement(id int, terms []int, condition []AtomID)
	TheoryAtom(id int, term int, elements []int, guard *TheoryGuard)

	Output(symbol string, condition []AtomID)
}
