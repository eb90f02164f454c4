package backend

import (
	"groundcore/config"
	"groundcore/domain"
)

// atomKey identifies one domain.Atom by its owning domain and uid,
// stable even though the *domain.PredicateDomain's atom arena can grow
// underneath the Translator between steps.
type atomKey struct {
	dom *domain.PredicateDomain
	uid uint32
}

// Translator assigns stable backend AtomIDs to domain.Atom values in
// first-requested order and drives a Backend with the resulting calls
// (spec §2 Output translator). Atom ids 0 and 1 are reserved (spec §6),
// so the first atom translated gets id 2.
//
// Grounded on original_source's libgringo output.cc translation layer,
// which performs the identical "assign an aspif literal id to each
// internal atom the first time it is referenced" bookkeeping.
type Translator struct {
	cfg   *config.Config
	ids   map[atomKey]AtomID
	next  AtomID
	Sink  Backend
}

// NewTranslator builds a Translator over sink, gated by cfg (nil
// selects config.New()'s defaults).
func NewTranslator(sink Backend, cfg *config.Config) *Translator {
	if cfg == nil {
		cfg = config.New()
	}
	return &Translator{cfg: cfg, ids: make(map[atomKey]AtomID), next: 2, Sink: sink}
}

// IDFor returns the stable AtomID for atom within dom, assigning a
// fresh one on first reference.
func (t *Translator) IDFor(dom *domain.PredicateDomain, atom *domain.Atom) AtomID {
	key := atomKey{dom: dom, uid: atom.UID}
	if id, ok := t.ids[key]; ok {
		return id
	}
	id := t.next
	t.next++
	t.ids[key] = id
	return id
}

// BodyLiteralRef is one body literal of a ground rule as the
// Translator needs it: the domain/atom it references and whether it
// occurs negated (spec §6: "literals are signed integer atom-ids").
type BodyLiteralRef struct {
	Domain  *domain.PredicateDomain
	Atom    *domain.Atom
	Negated bool
}

func (t *Translator) bodyIDs(body []BodyLiteralRef) []AtomID {
	ids := make([]AtomID, len(body))
	for i, b := range body {
		id := t.IDFor(b.Domain, b.Atom)
		if b.Negated {
			id = -id
		}
		ids[i] = id
	}
	return ids
}

// Rule translates one ground rule instance to the sink (spec §4.7's
// "build a ground rule of (head-atoms, body-literals)" plus §6's
// rule() call). When bodyFact is true and the configuration's
// preserveFacts is off, the body is omitted entirely — the canonical
// `rule({}, head, {})` shape of spec §8 scenarios S1/S6 — since a fact
// body carries no information the solver needs.
func (t *Translator) Rule(choice bool, headDoms []*domain.PredicateDomain, heads []*domain.Atom, bodyFact bool, body []BodyLiteralRef) {
	headIDs := make([]AtomID, len(heads))
	for i, h := range heads {
		headIDs[i] = t.IDFor(headDoms[i], h)
	}
	var bodyIDs []AtomID
	if !bodyFact || t.cfg.PreserveFacts() {
		bodyIDs = t.bodyIDs(body)
	}
	t.Sink.Rule(choice, headIDs, bodyIDs)
}

// WeightRule translates an aggregate-backed weight rule (spec §8
// scenario S2's "emits the weightRule or equivalent reified form for
// the aggregate").
func (t *Translator) WeightRule(choice bool, headDoms []*domain.PredicateDomain, heads []*domain.Atom, lowerBound int, body []BodyLiteralRef, weights []int) {
	headIDs := make([]AtomID, len(heads))
	for i, h := range heads {
		headIDs[i] = t.IDFor(headDoms[i], h)
	}
	wlits := make([]WeightedLiteral, len(body))
	for i, b := range body {
		id := t.IDFor(b.Domain, b.Atom)
		if b.Negated {
			id = -id
		}
		w := 1
		if i < len(weights) {
			w = weights[i]
		}
		wlits[i] = WeightedLiteral{Atom: id, Weight: w}
	}
	t.Sink.WeightRule(choice, headIDs, lowerBound, wlits)
}

// External translates one #external atom's resolved value (spec §6,
// SPEC_FULL §13's domain.ExternalValue enum).
func (t *Translator) External(dom *domain.PredicateDomain, atom *domain.Atom, value domain.ExternalValue) {
	t.Sink.External(t.IDFor(dom, atom), value)
}

// Output translates one #show directive match (spec §6: "output(symbol,
// condition) for show").
func (t *Translator) Output(symbolText string, condition []BodyLiteralRef) {
	t.Sink.Output(symbolText, t.bodyIDs(condition))
}

// Project translates one #project directive match (spec §6).
func (t *Translator) Project(dom *domain.PredicateDomain, atom *domain.Atom) {
	t.Sink.Project([]AtomID{t.IDFor(dom, atom)})
}

// Heuristic translates one #heuristic directive match (spec §6).
func (t *Translator) Heuristic(dom *domain.PredicateDomain, atom *domain.Atom, modifier HeuristicModifier, bias, priority int, condition []BodyLiteralRef) {
	t.Sink.Heuristic(t.IDFor(dom, atom), modifier, bias, priority, t.bodyIDs(condition))
}

// AcycEdge translates one #edge directive match (spec §6).
func (t *Translator) AcycEdge(uDom *domain.PredicateDomain, uAtom *domain.Atom, vDom *domain.PredicateDomain, vAtom *domain.Atom, condition []BodyLiteralRef) {
	t.Sink.AcycEdge(t.IDFor(uDom, uAtom), t.IDFor(vDom, vAtom), t.bodyIDs(condition))
}
