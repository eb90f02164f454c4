// Package ground implements the Instantiator, Scheduler, and Statement
// kinds of spec §4.5-§4.7: the machinery that actually runs a
// linearized body plan to a fixpoint and feeds every full assignment to
// the Statement that owns it.
//
// Grounded on original_source's gringo/ground/instantiation.hh
// (Instantiator: depth-first enumeration over a Binder chain, enqueue/
// pump/propagate) and gitrdm-gokando's stream.go (lazy solution streams
// driving a consumer callback per solution — the same role the
// Instantiator's DFS-then-report step plays here).
package ground

import (
	"groundcore/binder"
	"groundcore/safety"
	"groundcore/term"
)

// Consumer is invoked once per full assignment an Instantiator's plan
// produces (spec §4.5: "invoke the consumer (the owning Statement's
// report)").
type Consumer func()

// Instantiator runs one linearized Plan repeatedly to a fixpoint,
// pulling each binder's Updater before every pump so index-backed
// binders see newly derived atoms (spec §4.5 execution steps 1-4).
type Instantiator struct {
	Plan     safety.Plan
	Consumer Consumer
	Trail    *term.Trail
	// Owner, if set, has its Propagate called once after every pump, so
	// the owning Statement can re-enqueue the domains it defined new
	// atoms in (spec §4.7: "run the instantiators, invoking their
	// consumer on every match, and propagate").
	Owner Statement

	enqueued bool
}

// NewInstantiator builds an Instantiator for one linearized plan.
func NewInstantiator(plan safety.Plan, trail *term.Trail, consume Consumer) *Instantiator {
	return &Instantiator{Plan: plan, Trail: trail, Consumer: consume}
}

// Enqueue marks this instantiator as due for a pump (spec §4.7
// Statement.enqueue).
func (in *Instantiator) Enqueue() { in.enqueued = true }

// Enqueued reports whether a pump is pending.
func (in *Instantiator) Enqueued() bool { return in.enqueued }

// Pump runs one full depth-first enumeration of the plan's binders,
// invoking Consumer for every complete assignment, then clears enqueued
// and, if Owner is set, calls Owner.Propagate so freshly defined atoms
// get re-enqueued. Before enumerating, it calls Update on every binder
// that has an Updater. It returns true if the plan has zero steps or at
// least one binder has an Updater, and false otherwise; Update reports
// no change of its own, and the enumeration runs whatever the return
// value is, so Pump never returns early. A Plan with zero steps (a fact, or a
// zero-condition aggregate/disjunction element) always descends exactly
// once, since the empty conjunction is trivially satisfied by the empty
// assignment.
func (in *Instantiator) Pump(sc *Scheduler) bool {
	defer func() { in.enqueued = false }()

	binders := make([]binder.Binder, len(in.Plan))
	for i, step := range in.Plan {
		binders[i] = step.Literal.Index(step.Mode)
	}

	changed := len(binders) == 0
	for _, b := range binders {
		if u := b.Updater(); u != nil {
			u.Update()
			changed = true
		}
	}

	in.descend(binders, 0)
	if in.Owner != nil && sc != nil {
		in.Owner.Propagate(sc)
	}
	return changed
}

// descend performs the depth-first enumeration of spec §4.5 step 3.
func (in *Instantiator) descend(binders []binder.Binder, i int) {
	if i == len(binders) {
		if in.Consumer != nil {
			in.Consumer()
		}
		return
	}
	b := binders[i]
	b.Init(in.Trail)
	for b.Next(in.Trail) {
		in.descend(binders, i+1)
	}
}
