package ground

import (
	"groundcore/domain"
	"groundcore/literal"
	"groundcore/safety"
	"groundcore/symbol"
	"groundcore/term"
)

// DisjunctionElement is one `H : Cond` alternative of a disjunctive
// head (spec §4.7 Disjunction).
type DisjunctionElement struct {
	HeadDomain *domain.PredicateDomain
	HeadRepr   term.Term
	Cond       []literal.Literal
}

// Disjunction is the head-disjunction statement: accumulates candidate
// head atoms per disjunctive element, becoming a fact iff at least one
// head candidate is a fact under an empty condition (spec §4.7:
// "final atom is fact if at least one head candidate is fact with
// empty condition").
//
// Grounded on original_source's gringo/ground/statements.cc Disjunction
// class.
type Disjunction struct {
	Store     *symbol.Store
	Domain    *domain.PredicateDomain
	Repr      term.Term
	Elements  []DisjunctionElement
	Recursive bool
	Emit      OnGround

	trail             *term.Trail
	instantiators     []*Instantiator
	elemInstantiators []int // parallel index: which element each instantiator belongs to
	anyFact           bool
	dirty             bool
}

func NewDisjunction(store *symbol.Store, d *domain.PredicateDomain, repr term.Term, elems []DisjunctionElement, trail *term.Trail, emit OnGround) *Disjunction {
	return &Disjunction{Store: store, Domain: d, Repr: repr, Elements: elems, trail: trail, Emit: emit}
}

func (dj *Disjunction) StartLinearize(active bool) error {
	dj.instantiators = nil
	dj.elemInstantiators = nil
	if !active {
		return nil
	}
	for idx, elem := range dj.Elements {
		plans, err := safety.LinearizeRecursive(elem.Cond, map[string]bool{})
		if err != nil {
			return err
		}
		elemIdx := idx
		for _, plan := range plans {
			in := NewInstantiator(plan, dj.trail, func() { dj.reportElement(elemIdx) })
			in.Owner = dj
			dj.instantiators = append(dj.instantiators, in)
			dj.elemInstantiators = append(dj.elemInstantiators, elemIdx)
		}
	}
	return nil
}

func (dj *Disjunction) EnqueueSelf(sc *Scheduler) {
	for _, in := range dj.instantiators {
		sc.EnqueueInstantiator(in)
	}
}

// Instantiators exposes the instantiators built by the last
// StartLinearize call.
func (dj *Disjunction) Instantiators() []*Instantiator { return dj.instantiators }

func (dj *Disjunction) reportElement(idx int) {
	elem := dj.Elements[idx]
	sym, ok := elem.HeadRepr.Eval(dj.Store, nil)
	if !ok {
		return
	}
	atom, isNew := elem.HeadDomain.Define(sym, false)
	if isNew {
		dj.dirty = true
	}

	condFact := true
	for _, lit := range elem.Cond {
		_, isFact, ok := lit.ToOutput()
		if !ok || !isFact {
			condFact = false
			break
		}
	}
	if len(elem.Cond) == 0 && condFact && !atom.Fact {
		atom.Fact = true
		dj.dirty = true
	}
	if atom.Fact && len(elem.Cond) == 0 {
		dj.anyFact = true
	}
	dj.recompute()
}

func (dj *Disjunction) recompute() {
	sym, ok := dj.Repr.Eval(dj.Store, nil)
	if !ok {
		return
	}
	atom, isNew := dj.Domain.Define(sym, false)
	if isNew {
		dj.dirty = true
	}
	if dj.anyFact && !atom.Fact {
		atom.Fact = true
		dj.dirty = true
	}
}

// Propagate only re-enqueues domains this disjunction actually changed
// this pump; an unconditional re-enqueue would keep the scheduler
// spinning even after every element has stabilized.
func (dj *Disjunction) Propagate(sc *Scheduler) {
	if !dj.dirty {
		return
	}
	dj.dirty = false
	sc.EnqueueDomain(dj.Domain)
	for _, elem := range dj.Elements {
		sc.EnqueueDomain(elem.HeadDomain)
	}
}

var _ Statement = (*Disjunction)(nil)
