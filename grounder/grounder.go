// Package grounder is the top-level orchestrator (spec §6/§12): it
// turns an ir.Program into Backend calls by building the domain
// dependency graph, partitioning it into SCCs (spec §9), grounding one
// SCC at a time to a fixpoint (spec §4.6), and translating every
// emitted ground rule through a backend.Translator.
//
// Grounded on original_source's gringo/ground/program.cc orchestration
// (dependency analysis → per-SCC scheduling → output), here wired
// through the pack's observability/identity stack: each run gets a
// github.com/google/uuid run id threaded through internal/obslog
// fields, matching theRebelliousNerd-codenerd's practice of tagging a
// run's structured logs with a stable id so concurrent runs never
// interleave confusingly in the log stream.
package grounder

import (
	"fmt"

	"github.com/google/uuid"

	"groundcore/backend"
	"groundcore/config"
	"groundcore/domain"
	"groundcore/ground"
	"groundcore/internal/obslog"
	"groundcore/ir"
	"groundcore/literal"
	"groundcore/logging"
	"groundcore/symbol"
	"groundcore/term"
)

// Grounder owns the shared symbol store, configuration, logger, and
// backend translator for one or more grounding runs.
type Grounder struct {
	Store      *symbol.Store
	Cfg        *config.Config
	Log        *logging.Logger
	Obs        *obslog.Logger
	Translator *backend.Translator
	RunID      string
}

// New builds a Grounder writing to sink, generating a fresh run id.
func New(store *symbol.Store, cfg *config.Config, sink backend.Backend) *Grounder {
	if cfg == nil {
		cfg = config.New()
	}
	runID := uuid.NewString()
	log := logging.New(cfg)
	return &Grounder{
		Store:      store,
		Cfg:        cfg,
		Log:        log,
		Obs:        obslog.New(nil, runID),
		Translator: backend.NewTranslator(sink, cfg),
		RunID:      runID,
	}
}

// Run grounds every step of prog in order (spec §6's
// initProgram/beginStep/endStep bracketing; SPEC_FULL §13's
// incremental #program steps carry domains/generations forward between
// calls since a Grounder's domains persist across Step calls).
func (g *Grounder) Run(prog ir.Program) error {
	g.Translator.Sink.InitProgram(prog.Incremental)
	for i, step := range prog.Steps {
		if err := g.Step(step); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// Step grounds one #program step: it partitions step's rules' head
// domains into SCCs and runs each to a fixpoint in dependency order,
// translating every derived ground rule to the Translator's sink.
func (g *Grounder) Step(step ir.Step) error {
	g.Translator.Sink.BeginStep()
	defer g.Translator.Sink.EndStep()

	nodes, edges := buildDependencyGraph(step.Rules)
	sccs := orderSCCs(tarjan(nodes, edges))

	for _, scc := range sccs {
		if err := g.groundSCC(scc, step.Rules); err != nil {
			return err
		}
	}
	if err := g.groundThin(step.Rules); err != nil {
		return err
	}
	g.warnUndefinedAtoms(step.Rules)
	return nil
}

// warnUndefinedAtoms implements spec §7's atom-undefined warning:
// "reference to a predicate with no derivations and no #external —
// warning once per symbolic location". A domain that ends this step
// with zero atoms was never the target of any rule head and never had
// an atom reserved by a #external declaration either (#external always
// reserves the atom it names, so Size() > 0 the moment one exists),
// so Size() == 0 alone is exactly that condition. Checked only for
// positive references — a negative literal referencing an undefined
// atom is ordinary default negation, not a warning case.
func (g *Grounder) warnUndefinedAtoms(rules []ir.Rule) {
	for _, rule := range rules {
		for _, bs := range rule.Body {
			d, negative, ok := bs.Dep()
			if !ok || negative || d.Size() > 0 {
				continue
			}
			g.Log.Warn(logging.Warning{
				Category: config.WarnAtomUndefined,
				Location: rule.Location,
				Message:  "atom " + d.Sig.String(g.Store) + " has no derivations and is not declared #external",
			})
		}
	}
}

// inSet is a membership test over one SCC's domains.
type inSet map[*domain.PredicateDomain]bool

func toSet(domains []*domain.PredicateDomain) inSet {
	s := make(inSet, len(domains))
	for _, d := range domains {
		s[d] = true
	}
	return s
}

// groundSCC builds every rule whose (first) head domain belongs to scc,
// links their instantiators into a fresh Scheduler, and drives the SCC
// to its fixpoint (spec §4.6/§4.7).
//
// Simplification: a rule is assigned to the SCC of its first head atom
// domain. Disjunctive rules whose elements span more than one SCC are
// out of scope for this simplification — in practice gringo's own
// analysis keeps every element of one disjunction in the same
// component, since they share a body.
func (g *Grounder) groundSCC(scc []*domain.PredicateDomain, rules []ir.Rule) error {
	members := toSet(scc)
	sc := ground.NewScheduler()

	var allInstantiators []*ground.Instantiator
	domainSet := toSet(scc)
	var fixpointDomains []*domain.PredicateDomain
	fixpointDomains = append(fixpointDomains, scc...)

	addDomain := func(d *domain.PredicateDomain) {
		if d == nil || domainSet[d] {
			return
		}
		domainSet[d] = true
		fixpointDomains = append(fixpointDomains, d)
	}
	watchDeps := func(specs []ir.BodySpec, instantiators []*ground.Instantiator) {
		for _, bs := range specs {
			d, _, ok := bs.Dep()
			if !ok {
				continue
			}
			for _, in := range instantiators {
				sc.Watch(d, in)
			}
		}
	}

	for _, rule := range rules {
		if len(rule.Heads) == 0 || !members[rule.Heads[0].Domain] {
			continue
		}
		trail := &term.Trail{}
		headDoms := make([]*domain.PredicateDomain, len(rule.Heads))
		for i, h := range rule.Heads {
			headDoms[i] = h.Domain
			addDomain(h.Domain)
		}

		switch rule.StatementKind {
		case ir.StmtHeadAggregate:
			agg := ground.NewAggregate(g.Store, rule.AggFn, rule.AggLo, rule.AggHi)
			elems := make([]ground.HeadAggregateElement, len(rule.Elements))
			var deps []ir.BodySpec
			for i, e := range rule.Elements {
				cond, _ := g.buildBody(e.Cond, members, rule.Location)
				var witness ground.HeadAtomSpec
				if e.Witness != nil {
					witness = *e.Witness
					addDomain(witness.Domain)
				}
				elems[i] = ground.HeadAggregateElement{Cond: cond, TupleRepr: e.TupleRepr, WeightRepr: e.WeightRepr, Witness: witness}
				deps = append(deps, e.Cond...)
			}
			h := ground.NewHeadAggregate(g.Store, rule.Heads[0].Domain, rule.Heads[0].Repr, agg, elems, trail, nil)
			if err := h.StartLinearize(true); err != nil {
				return fmt.Errorf("%s: %w", rule.Location, err)
			}
			watchDeps(deps, h.Instantiators())
			allInstantiators = append(allInstantiators, h.Instantiators()...)

		case ir.StmtBodyAggregate:
			agg := ground.NewAggregate(g.Store, rule.AggFn, rule.AggLo, rule.AggHi)
			elems := make([]ground.BodyAggregateElement, len(rule.Elements))
			var deps []ir.BodySpec
			for i, e := range rule.Elements {
				cond, _ := g.buildBody(e.Cond, members, rule.Location)
				elems[i] = ground.BodyAggregateElement{Cond: cond, TupleRepr: e.TupleRepr, WeightRepr: e.WeightRepr}
				deps = append(deps, e.Cond...)
			}
			b := ground.NewBodyAggregate(g.Store, rule.Heads[0].Domain, rule.Heads[0].Repr, agg, elems, trail)
			if err := b.StartLinearize(true); err != nil {
				return fmt.Errorf("%s: %w", rule.Location, err)
			}
			watchDeps(deps, b.Instantiators())
			allInstantiators = append(allInstantiators, b.Instantiators()...)

		case ir.StmtConjunction:
			addDomain(rule.EmptyDomain)
			addDomain(rule.CondDomain)
			body, _ := g.buildBody(rule.Body, members, rule.Location)
			c := ground.NewConjunction(g.Store, rule.EmptyDomain, rule.CondDomain, rule.Heads[0].Domain, rule.CondRepr, rule.Heads[0].Repr, body, trail, nil)
			if err := c.StartLinearize(true); err != nil {
				return fmt.Errorf("%s: %w", rule.Location, err)
			}
			watchDeps(rule.Body, c.Instantiators())
			allInstantiators = append(allInstantiators, c.Instantiators()...)

		case ir.StmtDisjunction:
			elems := make([]ground.DisjunctionElement, len(rule.Elements))
			var deps []ir.BodySpec
			for i, e := range rule.Elements {
				cond, _ := g.buildBody(e.Cond, members, rule.Location)
				addDomain(e.HeadDomain)
				elems[i] = ground.DisjunctionElement{HeadDomain: e.HeadDomain, HeadRepr: e.HeadRepr, Cond: cond}
				deps = append(deps, e.Cond...)
			}
			dj := ground.NewDisjunction(g.Store, rule.Heads[0].Domain, rule.Heads[0].Repr, elems, trail, nil)
			if err := dj.StartLinearize(true); err != nil {
				return fmt.Errorf("%s: %w", rule.Location, err)
			}
			watchDeps(deps, dj.Instantiators())
			allInstantiators = append(allInstantiators, dj.Instantiators()...)

		case ir.StmtTheory:
			elems := make([]ground.TheoryElement, len(rule.Elements))
			var deps []ir.BodySpec
			for i, e := range rule.Elements {
				cond, _ := g.buildBody(e.Cond, members, rule.Location)
				elems[i] = ground.TheoryElement{Cond: cond, TermRepr: e.TermRepr}
				deps = append(deps, e.Cond...)
			}
			th := ground.NewTheory(g.Store, rule.Heads[0].Domain, rule.Heads[0].Repr, elems, trail, g.emitTheoryTerm)
			if err := th.StartLinearize(true); err != nil {
				return fmt.Errorf("%s: %w", rule.Location, err)
			}
			watchDeps(deps, th.Instantiators())
			allInstantiators = append(allInstantiators, th.Instantiators()...)

		default: // ir.StmtRule
			body, recursive := g.buildBody(rule.Body, members, rule.Location)
			r := ground.NewRule(g.Store, rule.Kind, rule.Heads, body, recursive, trail, g.onGround(rule.Kind, headDoms, rule.Body, body))
			if err := r.StartLinearize(true); err != nil {
				return fmt.Errorf("%s: %w", rule.Location, err)
			}
			watchDeps(rule.Body, r.Instantiators())
			allInstantiators = append(allInstantiators, r.Instantiators()...)
		}
	}

	sc.RunToFixpoint(fixpointDomains, allInstantiators)
	return nil
}

// emitTheoryTerm is the default theory-term sink for Theory statements
// (spec §4.7: "The theory data is emitted after all regular rules of
// the step"). Term structure (number/string/function) is inherently
// backend-specific (see ground/theory.go's doc comment); this core
// forwards each surviving term as its formatted text rather than
// attempting to recover function-term structure.
func (g *Grounder) emitTheoryTerm(sym symbol.Symbol) {
	g.Translator.Sink.TheoryTerm(backend.TheoryTerm{Kind: backend.TheoryTermString, String: g.Store.Format(sym)})
}

// buildBody realizes every BodySpec into a concrete literal.Literal,
// deferring predicate/ref construction until membership (and therefore
// the Recursive flag) is known, and reports whether the rule has any
// recursive literal at all. Every literal that can drop a match on an
// arithmetic-undefined evaluation (spec §7) is wired with this
// Grounder's Logger and the owning rule's Location, so that drop is
// reported rather than silent.
func (g *Grounder) buildBody(specs []ir.BodySpec, members inSet, loc logging.Location) ([]literal.Literal, bool) {
	body := make([]literal.Literal, len(specs))
	recursive := false
	for i, bs := range specs {
		if bs.Build != nil {
			isRecursive := bs.Domain != nil && members[bs.Domain]
			body[i] = bs.Build(isRecursive)
			if isRecursive {
				recursive = true
			}
		} else {
			body[i] = bs.Literal
		}
		if lg, ok := body[i].(literal.Loggable); ok {
			lg.SetLogger(g.Log, loc)
		}
	}
	return body, recursive
}

// onGround builds the ground.OnGround callback for one rule: it
// re-derives each non-trivial body literal's backend reference from
// the already-evaluated body slice (predicate/ref literals carry a
// stable Domain; Relation/Range/Script literals never reach the
// backend as atoms, spec §6) and forwards the completed ground rule to
// the Translator.
func (g *Grounder) onGround(kind ground.HeadKind, headDoms []*domain.PredicateDomain, specs []ir.BodySpec, body []literal.Literal) ground.OnGround {
	return func(heads []*domain.Atom, bodyFact bool) {
		refs := g.bodyRefs(specs, body)
		g.Translator.Rule(kind == ground.HeadChoice, headDoms, heads, bodyFact, refs)
	}
}

// bodyRefs re-derives the backend reference of every non-trivial body
// literal (predicate/ref literals carry a stable Domain; Relation/
// Range/Script literals never reach the backend as atoms, spec §6)
// from the already-evaluated body slice, for a ground rule or thin
// directive match currently being reported.
func (g *Grounder) bodyRefs(specs []ir.BodySpec, body []literal.Literal) []backend.BodyLiteralRef {
	var refs []backend.BodyLiteralRef
	for i, bs := range specs {
		d, negative, ok := bs.Dep()
		if !ok {
			continue
		}
		sym, _, litOK := body[i].ToOutput()
		if !litOK {
			continue
		}
		atom, found := d.Find(sym)
		if !found {
			continue
		}
		refs = append(refs, backend.BodyLiteralRef{Domain: d, Atom: atom, Negated: negative})
	}
	return refs
}

// groundThin grounds every spec §4.7 thin accumulator (show/project/
// heuristic/edge/external/minimize) of a step: unlike the other
// Statement kinds, a thin directive defines no domain atom of its own
// and can only reference atoms already fully derived, so every one
// runs once, after every SCC of the step has reached its fixpoint, in
// its own throwaway Scheduler.
func (g *Grounder) groundThin(rules []ir.Rule) error {
	minimizeAcc := map[int][]backend.WeightedLiteral{}
	noMembers := inSet{}
	for _, rule := range rules {
		if rule.StatementKind != ir.StmtThin {
			continue
		}
		body, _ := g.buildBody(rule.Body, noMembers, rule.Location)
		trail := &term.Trail{}

		terms := make([]term.Term, 0, len(rule.ThinAtoms)+len(rule.ThinTerms))
		for _, a := range rule.ThinAtoms {
			terms = append(terms, a.Repr)
		}
		terms = append(terms, rule.ThinTerms...)

		t := ground.NewThin(rule.ThinKind, g.Store, terms, body, trail, g.onGroundThin(rule, body, minimizeAcc))
		if err := t.StartLinearize(true); err != nil {
			return fmt.Errorf("%s: %w", rule.Location, err)
		}

		sc := ground.NewScheduler()
		for _, bs := range rule.Body {
			d, _, ok := bs.Dep()
			if !ok {
				continue
			}
			for _, in := range t.Instantiators() {
				sc.Watch(d, in)
			}
		}
		sc.RunToFixpoint(nil, t.Instantiators())
	}
	for priority, lits := range minimizeAcc {
		g.Translator.Sink.Minimize(priority, lits)
	}
	return nil
}

// onGroundThin builds the ThinEmit callback for one thin directive: it
// resolves rule.ThinAtoms' evaluated values against their domains
// (ThinExternal reserves rather than merely looks up its atom, since a
// #external declaration always reserves the atom it names), then
// dispatches on ThinKind to the matching Translator call.
func (g *Grounder) onGroundThin(rule ir.Rule, body []literal.Literal, minimizeAcc map[int][]backend.WeightedLiteral) ground.ThinEmit {
	nAtoms := len(rule.ThinAtoms)
	return func(kind ground.ThinKind, values []symbol.Symbol) {
		atoms := make([]*domain.Atom, nAtoms)
		for i, a := range rule.ThinAtoms {
			var atom *domain.Atom
			found := true
			if kind == ground.ThinExternal && i == 0 {
				atom, _ = a.Domain.Reserve(values[i])
			} else {
				atom, found = a.Domain.Find(values[i])
			}
			if !found {
				return
			}
			atoms[i] = atom
		}
		extra := values[nAtoms:]
		cond := g.bodyRefs(rule.Body, body)

		switch kind {
		case ground.ThinShow:
			g.Translator.Output(g.Store.Format(extra[0]), cond)
		case ground.ThinProject:
			g.Translator.Project(rule.ThinAtoms[0].Domain, atoms[0])
		case ground.ThinExternal:
			g.Translator.External(rule.ThinAtoms[0].Domain, atoms[0], rule.ExtValue)
		case ground.ThinHeuristic:
			bias, _ := g.Store.Num(extra[0])
			priority, _ := g.Store.Num(extra[1])
			g.Translator.Heuristic(rule.ThinAtoms[0].Domain, atoms[0], rule.Modifier, int(bias), int(priority), cond)
		case ground.ThinEdge:
			g.Translator.AcycEdge(rule.ThinAtoms[0].Domain, atoms[0], rule.ThinAtoms[1].Domain, atoms[1], cond)
		case ground.ThinMinimize:
			weight, _ := g.Store.Num(extra[0])
			priority, _ := g.Store.Num(extra[1])
			for _, ref := range cond {
				id := g.Translator.IDFor(ref.Domain, ref.Atom)
				if ref.Negated {
					id = -id
				}
				minimizeAcc[int(priority)] = append(minimizeAcc[int(priority)], backend.WeightedLiteral{Atom: id, Weight: int(weight)})
			}
		}
	}
}

// buildDependencyGraph collects every domain referenced by rules
// (as a head or a body dependency) and every head→body-dependency edge,
// for tarjan/orderSCCs to partition (spec §9).
func buildDependencyGraph(rules []ir.Rule) ([]*domain.PredicateDomain, []depEdge) {
	seen := make(map[*domain.PredicateDomain]bool)
	var nodes []*domain.PredicateDomain
	addNode := func(d *domain.PredicateDomain) {
		if !seen[d] {
			seen[d] = true
			nodes = append(nodes, d)
		}
	}

	var edges []depEdge
	for _, rule := range rules {
		for _, h := range rule.Heads {
			addNode(h.Domain)
		}
		for _, bs := range rule.Body {
			d, _, ok := bs.Dep()
			if !ok {
				continue
			}
			addNode(d)
			for _, h := range rule.Heads {
				edges = append(edges, depEdge{from: h.Domain, to: d})
			}
		}
	}
	return nodes, edges
}
