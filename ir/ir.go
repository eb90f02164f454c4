// Package ir stands in for the out-of-scope parser/front end (spec
// §6): "Non-ground IR consumed from the parser: an abstract program
// consisting of rules, each with head(s) ..., body literals (with NAF
// sign), and locations." Rather than re-modeling the AST of a full
// ASP language (lexing/parsing is explicitly out of scope), a Program
// is a thin, already-term-level description of each rule: which
// domains its heads and body literals target, and a deferred
// constructor for every literal whose safety-critical `Recursive` flag
// can only be decided once the dependency-analysis/SCC pass (grounder
// package) has partitioned the program.
//
// Grounded on original_source's gringo front end producing exactly
// this shape of "rule with a head/body over terms and already-resolved
// predicate domains" before grounding proper begins.
package ir

import (
	"groundcore/backend"
	"groundcore/domain"
	"groundcore/ground"
	"groundcore/literal"
	"groundcore/logging"
	"groundcore/symbol"
	"groundcore/term"
)

// BodySpec is one body position of a non-ground Rule. Exactly one of
// Literal (an already-built, SCC-independent literal — Relation,
// Range, or Script, none of which ever carry a Recursive flag) or
// Build (a deferred constructor for a predicate/ref literal, invoked
// once the grounder knows whether Domain is recursive in the SCC
// currently being grounded) is set.
type BodySpec struct {
	Literal literal.Literal
	Domain  *domain.PredicateDomain
	Negative bool
	Build   func(recursive bool) literal.Literal
}

// PredicateBody builds a BodySpec for a predicate- or ref-literal body
// position: build constructs the concrete literal.Predicate/literal.Ref
// once the grounder knows whether d is recursive in the SCC currently
// being grounded (the deferred Recursive flag, spec §4.3/§4.7).
func PredicateBody(d *domain.PredicateDomain, sign literal.Sign, build func(recursive bool) literal.Literal) BodySpec {
	return BodySpec{Domain: d, Negative: sign != literal.SignPos, Build: build}
}

// Dep returns (domain, negative, ok): ok is false for a body position
// that does not name a predicate/ref domain (Relation/Range/Script),
// which never contributes a dependency-graph edge.
func (b BodySpec) Dep() (*domain.PredicateDomain, bool, bool) {
	if b.Domain == nil {
		return nil, false, false
	}
	return b.Domain, b.Negative, true
}

// StatementKind distinguishes the seven non-ground statement shapes
// spec §4.7 groups under "Statements". The zero value, StmtRule, is a
// normal/choice/disjunctive-head rule (ground.Rule) — every Rule built
// before this type existed defaults to it. The other six each
// non-ground one of the ground.Statement kinds the single HeadKind
// model can't express: HeadAggregate/BodyAggregate, Conjunction,
// Disjunction (the standalone body-referenceable statement, distinct
// from Kind==HeadDisjunctive's plain disjunctive rule head), Theory,
// and Thin (spec §4.7's six show/project/heuristic/edge/external/
// minimize accumulators, one ThinKind per Rule).
type StatementKind uint8

const (
	StmtRule StatementKind = iota
	StmtHeadAggregate
	StmtBodyAggregate
	StmtConjunction
	StmtDisjunction
	StmtTheory
	StmtThin
)

// ElementSpec is one non-ground `terms : cond` alternative shared by
// the aggregate/conjunction/disjunction/theory statement kinds (spec
// §4.7): Cond is linearized independently of the owning statement's
// own dependencies, exactly like Rule.Body. Only the fields the owning
// StatementKind needs are populated.
type ElementSpec struct {
	Cond       []BodySpec
	TupleRepr  term.Term // HeadAggregate/BodyAggregate elements
	WeightRepr term.Term // HeadAggregate/BodyAggregate elements

	Witness *ground.HeadAtomSpec // HeadAggregate elements only

	HeadDomain *domain.PredicateDomain // Disjunction elements only
	HeadRepr   term.Term               // Disjunction elements only

	TermRepr term.Term // Theory elements only
}

// ThinAtomSpec names one domain atom a Project/External/Heuristic/Edge
// directive annotates: its Repr is evaluated alongside the directive's
// other terms (spec's "all terms defined" contract applies to it too),
// then resolved against Domain.
type ThinAtomSpec struct {
	Domain *domain.PredicateDomain
	Repr   term.Term
}

// Rule is one non-ground statement of a #program step. By default
// (StatementKind's zero value) it is a normal/choice/disjunctive rule,
// using Kind/Heads/Body exactly as before; for the other six
// StatementKinds, Kind/Body are unused except where noted below and
// the kind-specific fields carry its construction data instead.
type Rule struct {
	Kind     ground.HeadKind
	Heads    []ground.HeadAtomSpec
	Body     []BodySpec
	Location logging.Location

	StatementKind StatementKind

	// HeadAggregate/BodyAggregate: the aggregate's own atom is
	// Heads[0] (Domain/Repr); Body is unused (no enclosing rule body
	// beyond the elements' own Cond is modeled — a documented scope
	// simplification, see DESIGN.md).
	AggFn        ground.AggFunc
	AggLo, AggHi symbol.Symbol
	Elements     []ElementSpec

	// Conjunction: Heads[0] is the conjunction's own representative
	// atom; EmptyDomain/CondDomain/CondRepr name the other two
	// cooperating domains (spec §4.7 Conjunction); Body is the shared
	// condition body.
	EmptyDomain *domain.PredicateDomain
	CondDomain  *domain.PredicateDomain
	CondRepr    term.Term

	// Disjunction: Heads[0] is the disjunction's own representative
	// atom; Elements[i].HeadDomain/HeadRepr/Cond give each alternative.

	// Theory: Heads[0] is the theory atom; Elements[i].TermRepr/Cond
	// give each element. Surviving terms are forwarded to the backend
	// through Grounder's own theory-term emission (package grounder).

	// Thin: one of spec §4.7's six accumulators.
	ThinKind   ground.ThinKind
	ThinTerms  []term.Term             // kind-specific numeric/value terms (see grounder.onGroundThin)
	ThinAtoms  []ThinAtomSpec          // designated atom(s): Project/External/Heuristic take 1, Edge takes 2 (u,v), Show/Minimize take 0
	ExtValue   domain.ExternalValue      // ThinExternal only
	Modifier   backend.HeuristicModifier // ThinHeuristic only
}

// Step is the set of rules grounded together within one #program step
// (SPEC_FULL §13's beginStep/endStep bracket).
type Step struct {
	Rules []Rule
}

// Program is the full non-ground input: a sequence of steps, with
// Incremental matching spec §6's initProgram(incremental) flag.
type Program struct {
	Incremental bool
	Steps       []Step
}
