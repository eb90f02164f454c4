package ground

import (
	"groundcore/domain"
	"groundcore/literal"
	"groundcore/safety"
	"groundcore/symbol"
	"groundcore/term"
)

// BodyAggregateElement is one `terms : condition` element of a body
// aggregate (`#sum{W,X : p(X,W)}`): the condition literals, the term
// that distinguishes this element's tuple, and the weight term.
type BodyAggregateElement struct {
	Cond       []literal.Literal
	TupleRepr  term.Term
	WeightRepr term.Term
}

// BodyAggregate is the Complete+Accumulate+Literal trio of spec §4.7:
// Accumulate evaluates each element's condition to a fact/non-fact
// verdict and feeds it to the shared Aggregate; Complete writes the
// final Defined/Fact verdict into the atom once its dependency closure
// settles; the Literal half (referencing this atom from an enclosing
// rule body) is literal.Ref with RefAggregate.
//
// Grounded on original_source's gringo/ground/statements.cc
// BodyAggregate class (the Complete/Accumulate split mirrors its
// ToDo-set-then-finalize structure).
type BodyAggregate struct {
	Store    *symbol.Store
	Domain   *domain.PredicateDomain
	Repr     term.Term
	Agg      *Aggregate
	Elements []BodyAggregateElement

	trail         *term.Trail
	instantiators []*Instantiator
	dirty         bool
}

func NewBodyAggregate(store *symbol.Store, d *domain.PredicateDomain, repr term.Term, agg *Aggregate, elems []BodyAggregateElement, trail *term.Trail) *BodyAggregate {
	return &BodyAggregate{Store: store, Domain: d, Repr: repr, Agg: agg, Elements: elems, trail: trail}
}

func (b *BodyAggregate) StartLinearize(active bool) error {
	b.instantiators = nil
	if !active {
		return nil
	}
	for idx := range b.Elements {
		elemIdx := idx
		plans, err := safety.LinearizeRecursive(b.Elements[elemIdx].Cond, map[string]bool{})
		if err != nil {
			return err
		}
		for _, plan := range plans {
			in := NewInstantiator(plan, b.trail, func() { b.reportElement(elemIdx) })
			in.Owner = b
			b.instantiators = append(b.instantiators, in)
		}
	}
	return nil
}

func (b *BodyAggregate) EnqueueSelf(sc *Scheduler) {
	for _, in := range b.instantiators {
		sc.EnqueueInstantiator(in)
	}
}

// Instantiators exposes the instantiators built by the last
// StartLinearize call.
func (b *BodyAggregate) Instantiators() []*Instantiator { return b.instantiators }

func (b *BodyAggregate) reportElement(idx int) {
	elem := b.Elements[idx]
	tupleSym, ok := elem.TupleRepr.Eval(b.Store, nil)
	if !ok {
		return
	}
	tupleKey := b.Store.Format(tupleSym)

	var weight int64
	if elem.WeightRepr != nil {
		if w, ok := elem.WeightRepr.Eval(b.Store, nil); ok {
			if n, ok := b.Store.Num(w); ok {
				weight = int64(n)
			}
		}
	}

	state := elemTrue
	for _, lit := range elem.Cond {
		_, isFact, ok := lit.ToOutput()
		if !ok || !isFact {
			state = elemUnknown
			break
		}
	}
	b.Agg.Accumulate(tupleKey, weight, state)
	b.Report()
}

// Report (the Complete half) re-derives the aggregate atom's
// Defined/Fact flags from the Aggregate's current bound interval.
func (b *BodyAggregate) Report() {
	sym, ok := b.Repr.Eval(b.Store, nil)
	if !ok {
		return
	}
	atom, isNew := b.Domain.Define(sym, false)
	wasFact := atom.Fact
	b.Agg.Complete(atom)
	if isNew || atom.Fact != wasFact {
		b.dirty = true
	}
}

// Propagate re-enqueues the aggregate's domain only once this pump
// actually changed its Defined/Fact verdict.
func (b *BodyAggregate) Propagate(sc *Scheduler) {
	if !b.dirty {
		return
	}
	b.dirty = false
	sc.EnqueueDomain(b.Domain)
}

var _ Statement = (*BodyAggregate)(nil)
