package ground

import (
	"groundcore/domain"
	"groundcore/literal"
	"groundcore/safety"
	"groundcore/symbol"
	"groundcore/term"
)

// HeadAggregateElement is one tuple-producing alternative of a head
// aggregate (`#count{X : p(X)} = N :- ...` used in a rule head): its
// condition body, the witness predicate atom it defines when the
// tuple is chosen, and the weight contributed.
type HeadAggregateElement struct {
	Cond       []literal.Literal
	TupleRepr  term.Term // evaluates to the distinguishing tuple key
	WeightRepr term.Term // evaluates to the element's weight (ignored for #count)
	Witness    HeadAtomSpec
}

// HeadAggregate pairs an Aggregate's Complete+Accumulate state with,
// for each tuple, the predicate atom(s) that witness it (spec §4.7:
// "similar Complete/Accumulate pair; additionally records, for each
// tuple, which predicate atom(s) witness it").
//
// Grounded on original_source's gringo/ground/statements.cc
// HeadAggregate class.
type HeadAggregate struct {
	Store    *symbol.Store
	Domain   *domain.PredicateDomain
	Repr     term.Term
	Agg      *Aggregate
	Elements []HeadAggregateElement
	Emit     OnGround

	trail         *term.Trail
	instantiators []*Instantiator
	witnesses     map[string][]*domain.Atom
	dirty         bool
}

func NewHeadAggregate(store *symbol.Store, d *domain.PredicateDomain, repr term.Term, agg *Aggregate, elems []HeadAggregateElement, trail *term.Trail, emit OnGround) *HeadAggregate {
	return &HeadAggregate{
		Store: store, Domain: d, Repr: repr, Agg: agg, Elements: elems, trail: trail, Emit: emit,
		witnesses: make(map[string][]*domain.Atom),
	}
}

func (h *HeadAggregate) StartLinearize(active bool) error {
	h.instantiators = nil
	if !active {
		return nil
	}
	for idx := range h.Elements {
		elemIdx := idx
		plans, err := safety.LinearizeRecursive(h.Elements[elemIdx].Cond, map[string]bool{})
		if err != nil {
			return err
		}
		for _, plan := range plans {
			in := NewInstantiator(plan, h.trail, func() { h.reportElement(elemIdx) })
			in.Owner = h
			h.instantiators = append(h.instantiators, in)
		}
	}
	return nil
}

func (h *HeadAggregate) EnqueueSelf(sc *Scheduler) {
	for _, in := range h.instantiators {
		sc.EnqueueInstantiator(in)
	}
}

// Instantiators exposes the instantiators built by the last
// StartLinearize call.
func (h *HeadAggregate) Instantiators() []*Instantiator { return h.instantiators }

func (h *HeadAggregate) reportElement(idx int) {
	elem := h.Elements[idx]
	tupleSym, ok := elem.TupleRepr.Eval(h.Store, nil)
	if !ok {
		return
	}
	tupleKey := h.Store.Format(tupleSym)

	var weight int64
	if elem.WeightRepr != nil {
		if w, ok := elem.WeightRepr.Eval(h.Store, nil); ok {
			if n, ok := h.Store.Num(w); ok {
				weight = int64(n)
			}
		}
	}

	witnessSym, ok := elem.Witness.Repr.Eval(h.Store, nil)
	if !ok {
		return
	}
	witnessAtom, isNew := elem.Witness.Domain.Define(witnessSym, false)
	if isNew {
		h.dirty = true
	}
	h.witnesses[tupleKey] = append(h.witnesses[tupleKey], witnessAtom)

	state := elemUnknown
	if witnessAtom.Fact {
		state = elemTrue
	}
	h.Agg.Accumulate(tupleKey, weight, state)

	sym, ok := h.Repr.Eval(h.Store, nil)
	if !ok {
		return
	}
	atom, isNewHead := h.Domain.Define(sym, false)
	wasFact := atom.Fact
	h.Agg.Complete(atom)
	if isNewHead || atom.Fact != wasFact {
		h.dirty = true
	}
}

// Witnesses returns every predicate atom recorded as witnessing
// tupleKey so far.
func (h *HeadAggregate) Witnesses(tupleKey string) []*domain.Atom {
	return h.witnesses[tupleKey]
}

// Propagate re-enqueues only the domains this pump actually touched.
func (h *HeadAggregate) Propagate(sc *Scheduler) {
	if !h.dirty {
		return
	}
	h.dirty = false
	sc.EnqueueDomain(h.Domain)
	for _, elem := range h.Elements {
		sc.EnqueueDomain(elem.Witness.Domain)
	}
}

var _ Statement = (*HeadAggregate)(nil)
