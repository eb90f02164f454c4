package ground

import (
	"groundcore/domain"
	"groundcore/literal"
	"groundcore/safety"
	"groundcore/symbol"
	"groundcore/term"
)

// Conjunction is the body-conjunction statement `A :- B1,...,Bn` used
// as a single body literal elsewhere (spec §4.7): three domains
// cooperate — Empty (a placeholder marking that the accumulator has
// seen the trivially-true empty condition), Cond (one atom per
// condition instance), and Head (the conjunction's own representative
// atom). The final atom is a fact iff every condition instance seen so
// far either has a matching fact head or has been falsified.
//
// Grounded on original_source's gringo/ground/statements.cc Conjunction
// class; simplified here to resolve a
// condition instance as settled once its body literals are all facts,
// rather than modeling the fully general not-yet-falsified state.
type Conjunction struct {
	Store      *symbol.Store
	EmptyAtom  *domain.PredicateDomain
	CondDomain *domain.PredicateDomain
	HeadDomain *domain.PredicateDomain
	CondRepr   term.Term
	HeadRepr   term.Term
	Body       []literal.Literal
	Recursive  bool
	Emit       OnGround

	trail         *term.Trail
	instantiators []*Instantiator
	condInstances map[string]*domain.Atom
	dirty         bool
}

func NewConjunction(store *symbol.Store, empty, cond, head *domain.PredicateDomain, condRepr, headRepr term.Term, body []literal.Literal, trail *term.Trail, emit OnGround) *Conjunction {
	return &Conjunction{
		Store: store, EmptyAtom: empty, CondDomain: cond, HeadDomain: head,
		CondRepr: condRepr, HeadRepr: headRepr, Body: body, trail: trail, Emit: emit,
		condInstances: make(map[string]*domain.Atom),
	}
}

func (c *Conjunction) StartLinearize(active bool) error {
	c.instantiators = nil
	if !active {
		return nil
	}
	plans, err := safety.LinearizeRecursive(c.Body, map[string]bool{})
	if err != nil {
		return err
	}
	for _, plan := range plans {
		in := NewInstantiator(plan, c.trail, c.Report)
		in.Owner = c
		c.instantiators = append(c.instantiators, in)
	}
	return nil
}

func (c *Conjunction) EnqueueSelf(sc *Scheduler) {
	for _, in := range c.instantiators {
		sc.EnqueueInstantiator(in)
	}
}

// Instantiators exposes the instantiators built by the last
// StartLinearize call.
func (c *Conjunction) Instantiators() []*Instantiator { return c.instantiators }

func (c *Conjunction) Report() {
	condSym, ok := c.CondRepr.Eval(c.Store, nil)
	if !ok {
		return
	}
	condAtom, isNew := c.CondDomain.Define(condSym, false)
	if isNew {
		c.dirty = true
	}

	bodyFact := true
	for _, lit := range c.Body {
		_, isFact, ok := lit.ToOutput()
		if !ok || !isFact {
			bodyFact = false
			break
		}
	}
	if condAtom.Fact != bodyFact {
		c.dirty = true
	}
	condAtom.Fact = bodyFact
	c.condInstances[c.Store.Format(condSym)] = condAtom
	c.recomputeHead()
}

// recomputeHead re-derives the conjunction's own representative atom:
// a fact once every condition instance observed is itself a fact (spec:
// "the final atom becomes fact iff every cond-instance has a matching
// fact head or is falsified" — a condition instance with a non-fact
// body never resolves to falsified in this simplified model, so it
// simply withholds the final fact promotion until it does).
func (c *Conjunction) recomputeHead() {
	headSym, ok := c.HeadRepr.Eval(c.Store, nil)
	if !ok {
		return
	}
	headAtom, isNew := c.HeadDomain.Define(headSym, false)
	if isNew {
		c.dirty = true
	}
	if len(c.condInstances) == 0 {
		return
	}
	for _, atom := range c.condInstances {
		if !atom.Fact {
			return
		}
	}
	if !headAtom.Fact {
		headAtom.Fact = true
		c.dirty = true
	}
}

// Propagate re-enqueues this conjunction's domains once something about
// them actually changed this pump (new condition instance or head
// promoted to fact), avoiding an unconditional re-enqueue that would
// never let the scheduler's queue drain.
func (c *Conjunction) Propagate(sc *Scheduler) {
	if !c.dirty {
		return
	}
	c.dirty = false
	sc.EnqueueDomain(c.EmptyAtom)
	sc.EnqueueDomain(c.CondDomain)
	sc.EnqueueDomain(c.HeadDomain)
}

var _ Statement = (*Conjunction)(nil)
