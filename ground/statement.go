package ground

// Statement is the common contract of every stateful grounding node
// (spec §4.7): rules, aggregate accumulators, conjunctions,
// disjunctions, theory atoms, and the thin output accumulators
// (Show/Project/Heuristic/Edge/External/Minimize).
//
// Grounded on original_source's gringo/ground/statements.hh Statement
// base class, collapsed (per design note §9) from a class hierarchy
// into a single interface implemented by tagged Go structs.
type Statement interface {
	// StartLinearize resets this statement's instantiators for a fresh
	// grounding phase; if active is false the statement produces no
	// output this phase (spec: e.g. a #show directive inactive under
	// the current program part).
	StartLinearize(active bool) error

	// EnqueueSelf schedules every instantiator this statement owns onto
	// sc for an initial pump.
	EnqueueSelf(sc *Scheduler)

	// Report is invoked once per full body-assignment its Instantiator
	// produces; it must evaluate the head, obtain/define the
	// appropriate atoms, and accumulate whatever state this kind of
	// statement keeps.
	Report()

	// Propagate runs after a pump completes, enqueueing any statements
	// that consume this one's output (e.g. an aggregate's Complete
	// consumer once Accumulate changes its bounds).
	Propagate(sc *Scheduler)
}
