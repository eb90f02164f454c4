package ground

import (
	"groundcore/literal"
	"groundcore/safety"
	"groundcore/symbol"
	"groundcore/term"
)

// ThinKind discriminates the six output-only statement kinds of spec
// §4.7's last paragraph: "Show, Project, Heuristic, Edge, External,
// Minimize: thin accumulators that evaluate their terms and, for each
// match with all terms defined, write one corresponding output
// statement."
type ThinKind uint8

const (
	ThinShow ThinKind = iota
	ThinProject
	ThinHeuristic
	ThinEdge
	ThinExternal
	ThinMinimize
)

func (k ThinKind) String() string {
	switch k {
	case ThinShow:
		return "show"
	case ThinProject:
		return "project"
	case ThinHeuristic:
		return "heuristic"
	case ThinEdge:
		return "edge"
	case ThinExternal:
		return "external"
	case ThinMinimize:
		return "minimize"
	default:
		return "unknown"
	}
}

// ThinEmit is invoked once per fully-bound match of a thin accumulator,
// with every term's evaluated value in declaration order.
type ThinEmit func(kind ThinKind, values []symbol.Symbol)

// Thin implements every one of spec §4.7's six thin accumulator kinds:
// they share an identical shape (evaluate terms under a linearized
// body, emit if every term is defined) and differ only in Kind, which
// the grounder/backend layer dispatches on to choose the Backend
// method to call (spec §6: show/project/heuristic/edge/external/
// minimize are each one Backend operation).
//
// Grounded on original_source's gringo/ground/statements.cc thin
// statement classes (ShowStatement, ProjectStatement, HeuristicStatement,
// EdgeStatement, ExternalStatement, WeakConstraint/Minimize), which the
// spec's distillation already recognized as structurally identical and
// this implementation keeps as one generic type rather than six.
type Thin struct {
	Kind  ThinKind
	Store *symbol.Store
	Terms []term.Term
	Body  []literal.Literal
	Emit  ThinEmit

	trail         *term.Trail
	instantiators []*Instantiator
}

func NewThin(kind ThinKind, store *symbol.Store, terms []term.Term, body []literal.Literal, trail *term.Trail, emit ThinEmit) *Thin {
	return &Thin{Kind: kind, Store: store, Terms: terms, Body: body, trail: trail, Emit: emit}
}

func (t *Thin) StartLinearize(active bool) error {
	t.instantiators = nil
	if !active {
		return nil
	}
	plans, err := safety.LinearizeRecursive(t.Body, map[string]bool{})
	if err != nil {
		return err
	}
	for _, plan := range plans {
		in := NewInstantiator(plan, t.trail, t.Report)
		in.Owner = t
		t.instantiators = append(t.instantiators, in)
	}
	return nil
}

func (t *Thin) EnqueueSelf(sc *Scheduler) {
	for _, in := range t.instantiators {
		sc.EnqueueInstantiator(in)
	}
}

// Instantiators exposes the instantiators built by the last
// StartLinearize call.
func (t *Thin) Instantiators() []*Instantiator { return t.instantiators }

func (t *Thin) Report() {
	values := make([]symbol.Symbol, len(t.Terms))
	for i, tm := range t.Terms {
		v, ok := tm.Eval(t.Store, nil)
		if !ok {
			return
		}
		values[i] = v
	}
	if t.Emit != nil {
		t.Emit(t.Kind, values)
	}
}

func (t *Thin) Propagate(sc *Scheduler) {}

var _ Statement = (*Thin)(nil)
