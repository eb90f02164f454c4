package ground

import (
	"groundcore/domain"
	"groundcore/literal"
	"groundcore/safety"
	"groundcore/symbol"
	"groundcore/term"
)

// HeadKind distinguishes the three rule shapes spec §4.7 names under
// "Normal / choice / disjunctive rule".
type HeadKind uint8

const (
	HeadNormal HeadKind = iota
	HeadChoice
	HeadDisjunctive
)

// HeadAtomSpec is one head atom template: which domain it belongs to,
// its term, and whether it's an auxiliary atom introduced by grounding
// (aux atoms never count toward a body's fact-promotion, spec: "mark
// body as fact if every body literal is a fact and every head literal
// is non-aux").
type HeadAtomSpec struct {
	Domain *domain.PredicateDomain
	Repr   term.Term
	Aux    bool
}

// OnGround is invoked once per ground rule instance this statement
// derives, so the grounder can forward it to the Backend (spec §4.7:
// "build a ground rule of (head-atoms, body-literals)").
type OnGround func(heads []*domain.Atom, bodyFact bool)

// Rule is the Normal/choice/disjunctive rule statement (spec §4.7).
type Rule struct {
	Store     *symbol.Store
	Kind      HeadKind
	Heads     []HeadAtomSpec
	Body      []literal.Literal
	Recursive bool
	Emit      OnGround

	trail         *term.Trail
	instantiators []*Instantiator
	dirty         bool
}

// NewRule constructs a Rule statement; trail is the shared reversible
// binding trail for the rule's body variables.
func NewRule(store *symbol.Store, kind HeadKind, heads []HeadAtomSpec, body []literal.Literal, recursive bool, trail *term.Trail, emit OnGround) *Rule {
	return &Rule{Store: store, Kind: kind, Heads: heads, Body: body, Recursive: recursive, trail: trail, Emit: emit}
}

func (r *Rule) StartLinearize(active bool) error {
	r.instantiators = nil
	if !active {
		return nil
	}
	plans, err := safety.LinearizeRecursive(r.Body, map[string]bool{})
	if err != nil {
		return err
	}
	for _, plan := range plans {
		in := NewInstantiator(plan, r.trail, r.Report)
		in.Owner = r
		r.instantiators = append(r.instantiators, in)
	}
	return nil
}

func (r *Rule) EnqueueSelf(sc *Scheduler) {
	for _, in := range r.instantiators {
		sc.EnqueueInstantiator(in)
	}
}

// Instantiators exposes the instantiators built by the last
// StartLinearize call, so callers can register domain dependencies via
// Scheduler.Watch before driving the fixpoint.
func (r *Rule) Instantiators() []*Instantiator { return r.instantiators }

// Report evaluates the head term(s) under the current (fully bound)
// assignment, defines the corresponding atoms, computes whether the
// body is a fact, and forwards the ground rule to Emit (spec §4.7:
// "for each assignment, evaluate the head term(s), obtain/define
// atoms in the head domain ... mark body as fact if every body literal
// is a fact and every head literal is non-aux. If disjunctive and
// exactly one head survives with a fact body, promote that atom to
// fact").
func (r *Rule) Report() {
	heads := make([]*domain.Atom, 0, len(r.Heads))
	allNonAux := true
	for _, h := range r.Heads {
		sym, ok := h.Repr.Eval(r.Store, nil)
		if !ok {
			continue
		}
		atom, isNew := h.Domain.Define(sym, false)
		if isNew {
			r.dirty = true
		}
		heads = append(heads, atom)
		if h.Aux {
			allNonAux = false
		}
	}

	bodyFact := true
	for _, lit := range r.Body {
		_, isFact, ok := lit.ToOutput()
		if !ok || !isFact {
			bodyFact = false
			break
		}
	}
	bodyFact = bodyFact && allNonAux

	switch r.Kind {
	case HeadDisjunctive:
		if len(heads) == 1 && bodyFact && !heads[0].Fact {
			heads[0].Fact = true
			r.dirty = true
		}
	case HeadNormal:
		if len(heads) == 1 && bodyFact && !heads[0].Fact {
			heads[0].Fact = true
			r.dirty = true
		}
	case HeadChoice:
		// a choice head is never itself promoted to fact by its body:
		// each head atom remains a candidate the solver decides on.
	}

	if r.Emit != nil {
		r.Emit(heads, bodyFact)
	}
}

// Propagate re-enqueues every head domain this rule defined a new atom
// in or promoted to fact since the last Propagate, so dependent
// instantiators observe the change (spec §4.6); a pump that derived
// nothing new is a no-op here, which is what keeps the scheduler's
// fixpoint from spinning forever on an already-saturated rule.
func (r *Rule) Propagate(sc *Scheduler) {
	if !r.dirty {
		return
	}
	r.dirty = false
	for _, h := range r.Heads {
		sc.EnqueueDomain(h.Domain)
	}
}

var _ Statement = (*Rule)(nil)
