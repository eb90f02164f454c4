package ground

import (
	"github.com/emirpasic/gods/queues/priorityqueue"

	"groundcore/domain"
)

// itemKind discriminates a Scheduler queue entry.
type itemKind uint8

const (
	itemDomain itemKind = iota
	itemInstantiator
)

// item is one entry in the Scheduler's priority queue: either a domain
// that grew and needs its dependent instantiators notified, or an
// instantiator due for a pump (spec §4.6).
type item struct {
	kind         itemKind
	priority     int
	domain       *domain.PredicateDomain
	instantiator *Instantiator
}

// priority orders domains ahead of instantiators so that a domain's
// growth is always observed (via Update) before the instantiators that
// depend on it are pumped again (spec §4.6: "priorities chosen so that
// updates of source domains precede re-evaluation of dependent
// instantiators").
func priorityOf(kind itemKind) int {
	if kind == itemDomain {
		return 0
	}
	return 1
}

func compareItems(a, b interface{}) int {
	ia, ib := a.(item), b.(item)
	return ia.priority - ib.priority
}

// Scheduler drives one SCC's fixpoint loop (spec §4.6): a priority
// queue of enqueued domains and instantiators, where popping a domain
// wakes every instantiator watching it (it does not advance the
// domain's incOffset; RunToFixpoint does that between rounds), and
// popping an instantiator runs one pump, which may define new atoms
// and re-enqueue their domains.
//
// Grounded on original_source's gringo/ground/program.cc SCC evaluation
// loop (the same pop-domain-then-pop-instantiator fixpoint, here backed
// by gods' priorityqueue rather than a hand-rolled heap — sourced from
// npillmayer-gorgo's and theRebelliousNerd-codenerd's use of gods
// ordered containers elsewhere in the pack).
type Scheduler struct {
	queue *priorityqueue.Queue

	dependents  map[*domain.PredicateDomain][]*Instantiator
	queuedDom   map[*domain.PredicateDomain]bool
	queuedInst  map[*Instantiator]bool
}

// NewScheduler creates an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		queue:      priorityqueue.NewWith(compareItems),
		dependents: make(map[*domain.PredicateDomain][]*Instantiator),
		queuedDom:  make(map[*domain.PredicateDomain]bool),
		queuedInst: make(map[*Instantiator]bool),
	}
}

// Watch registers in as depending on d: whenever d is enqueued and
// popped, in is enqueued too (built while constructing in's binders,
// once for every domain one of its literals indexes).
func (sc *Scheduler) Watch(d *domain.PredicateDomain, in *Instantiator) {
	sc.dependents[d] = append(sc.dependents[d], in)
}

// EnqueueDomain schedules d for a growth check, deduplicating repeated
// enqueues before it's popped.
func (sc *Scheduler) EnqueueDomain(d *domain.PredicateDomain) {
	if sc.queuedDom[d] {
		return
	}
	sc.queuedDom[d] = true
	sc.queue.Enqueue(item{kind: itemDomain, priority: priorityOf(itemDomain), domain: d})
}

// EnqueueInstantiator schedules in for a pump, deduplicating repeated
// enqueues before it's popped.
func (sc *Scheduler) EnqueueInstantiator(in *Instantiator) {
	if sc.queuedInst[in] {
		return
	}
	sc.queuedInst[in] = true
	in.Enqueue()
	sc.queue.Enqueue(item{kind: itemInstantiator, priority: priorityOf(itemInstantiator), instantiator: in})
}

// Run drains the queue to a fixpoint (spec §4.6 step 2): popping a
// domain wakes its dependents (so they observe the domain's growth on
// their next pump via Update); popping an instantiator pumps it, then
// calls its owning Statement's Propagate, which re-enqueues domains it
// actually defined new atoms in.
//
// Run does not itself advance any domain's generation: within one wave,
// "NEW" keeps meaning "derived since the last round boundary" across
// every pump of the wave, not just since the previous pump. Advancing
// generation is a round boundary, driven by RunToFixpoint.
func (sc *Scheduler) Run() {
	for !sc.queue.Empty() {
		v, ok := sc.queue.Dequeue()
		if !ok {
			return
		}
		it := v.(item)
		switch it.kind {
		case itemDomain:
			delete(sc.queuedDom, it.domain)
			for _, dep := range sc.dependents[it.domain] {
				sc.EnqueueInstantiator(dep)
			}
		case itemInstantiator:
			delete(sc.queuedInst, it.instantiator)
			it.instantiator.Pump(sc)
		}
	}
}

// RunToFixpoint drives one SCC to completion (spec §4.6): it drains the
// queue, then advances every domain's generation (so this round's NEW
// atoms become OLD) and checks whether any of them grew; if none did,
// the SCC has reached its fixpoint and RunToFixpoint returns, otherwise
// it re-enqueues everything for another round. Termination follows from
// each domain being append-only over a finite Herbrand base.
func (sc *Scheduler) RunToFixpoint(domains []*domain.PredicateDomain, instantiators []*Instantiator) {
	for _, d := range domains {
		sc.EnqueueDomain(d)
	}
	for _, in := range instantiators {
		sc.EnqueueInstantiator(in)
	}
	for {
		sc.Run()
		grew := false
		for _, d := range domains {
			if d.Size() > d.IncOffset() {
				d.AdvanceGeneration()
				grew = true
			}
		}
		if !grew {
			return
		}
		for _, d := range domains {
			sc.EnqueueDomain(d)
		}
		for _, in := range instantiators {
			sc.EnqueueInstantiator(in)
		}
	}
}
