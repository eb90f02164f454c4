package ground

import (
	"groundcore/domain"
	"groundcore/literal"
	"groundcore/safety"
	"groundcore/symbol"
	"groundcore/term"
)

// TheoryElement is one element of a theory atom's term/condition list
// (spec §4.7 Theory atom: "manage theory terms/elements and register
// them with the theory backend").
type TheoryElement struct {
	Cond      []literal.Literal
	TermRepr  term.Term // the raw theory term, opaque to the core grounder
}

// Theory is the Complete+Accumulate pair for a #theory atom: it
// resolves each element's condition and records which elements survive
// (their raw term, not interpreted by the core), to be handed to the
// theory backend after all regular rules of the step (spec: "The
// theory data is emitted after all regular rules of the step").
//
// Grounded on original_source's gringo/ground/statements.cc
// TheoryAccumulate/TheoryComplete pair — simplified here since theory
// term interpretation is inherently backend-specific and out of this
// core's scope (the core only tracks which elements survive).
type Theory struct {
	Store    *symbol.Store
	Domain   *domain.PredicateDomain
	Repr     term.Term
	Elements []TheoryElement
	EmitTerm func(sym symbol.Symbol)

	trail         *term.Trail
	instantiators []*Instantiator
	survivors     []symbol.Symbol
	dirty         bool
}

func NewTheory(store *symbol.Store, d *domain.PredicateDomain, repr term.Term, elems []TheoryElement, trail *term.Trail, emitTerm func(symbol.Symbol)) *Theory {
	return &Theory{Store: store, Domain: d, Repr: repr, Elements: elems, trail: trail, EmitTerm: emitTerm}
}

func (th *Theory) StartLinearize(active bool) error {
	th.instantiators = nil
	th.survivors = nil
	if !active {
		return nil
	}
	for idx := range th.Elements {
		elemIdx := idx
		plans, err := safety.LinearizeRecursive(th.Elements[elemIdx].Cond, map[string]bool{})
		if err != nil {
			return err
		}
		for _, plan := range plans {
			in := NewInstantiator(plan, th.trail, func() { th.reportElement(elemIdx) })
			in.Owner = th
			th.instantiators = append(th.instantiators, in)
		}
	}
	return nil
}

func (th *Theory) EnqueueSelf(sc *Scheduler) {
	for _, in := range th.instantiators {
		sc.EnqueueInstantiator(in)
	}
}

// Instantiators exposes the instantiators built by the last
// StartLinearize call.
func (th *Theory) Instantiators() []*Instantiator { return th.instantiators }

func (th *Theory) reportElement(idx int) {
	elem := th.Elements[idx]
	for _, lit := range elem.Cond {
		_, isFact, ok := lit.ToOutput()
		if !ok || !isFact {
			return
		}
	}
	sym, ok := elem.TermRepr.Eval(th.Store, nil)
	if !ok {
		return
	}
	th.survivors = append(th.survivors, sym)
	if th.EmitTerm != nil {
		th.EmitTerm(sym)
	}
	th.Report()
}

// Report (the Complete half) marks the theory atom defined once it has
// at least one surviving element.
func (th *Theory) Report() {
	sym, ok := th.Repr.Eval(th.Store, nil)
	if !ok {
		return
	}
	atom, isNew := th.Domain.Define(sym, false)
	wasFact := atom.Fact
	if len(th.survivors) > 0 {
		atom.Fact = true
	}
	if isNew || atom.Fact != wasFact {
		th.dirty = true
	}
}

// Propagate re-enqueues the theory atom's domain only once this pump
// actually changed its verdict.
func (th *Theory) Propagate(sc *Scheduler) {
	if !th.dirty {
		return
	}
	th.dirty = false
	sc.EnqueueDomain(th.Domain)
}

var _ Statement = (*Theory)(nil)
