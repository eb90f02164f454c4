package backend

import (
	"fmt"
	"io"
	"strings"

	"groundcore/domain"
)

// TextBackend is a human-readable Backend that writes one line per
// call to an io.Writer, in the gringo `--text` tee-sink style
// (SPEC_FULL §10.3's "verbose debug mode: text" reaches for exactly
// this backend as its tee sink).
type TextBackend struct {
	w      io.Writer
	prefix string
}

// NewTextBackend wraps w, prefixing every emitted line with prefix
// (empty for the top-level sink; non-empty when used as the debug tee
// alongside another real sink).
func NewTextBackend(w io.Writer, prefix string) *TextBackend {
	return &TextBackend{w: w, prefix: prefix}
}

func (b *TextBackend) printf(format string, args ...interface{}) {
	fmt.Fprintf(b.w, b.prefix+format+"\n", args...)
}

func atomIDsString(ids []AtomID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

func weightedLiteralsString(wl []WeightedLiteral) string {
	parts := make([]string, len(wl))
	for i, w := range wl {
		parts[i] = fmt.Sprintf("%d=%d", w.Atom, w.Weight)
	}
	return strings.Join(parts, ",")
}

func (b *TextBackend) InitProgram(incremental bool) { b.printf("initProgram(incremental=%t)", incremental) }
func (b *TextBackend) BeginStep()                   { b.printf("beginStep()") }
func (b *TextBackend) EndStep()                     { b.printf("endStep()") }

func (b *TextBackend) Rule(choice bool, head []AtomID, body []AtomID) {
	b.printf("rule(choice=%t, {%s}, {%s})", choice, atomIDsString(head), atomIDsString(body))
}

func (b *TextBackend) WeightRule(choice bool, head []AtomID, lowerBound int, body []WeightedLiteral) {
	b.printf("weightRule(choice=%t, {%s}, %d, {%s})", choice, atomIDsString(head), lowerBound, weightedLiteralsString(body))
}

func (b *TextBackend) Minimize(priority int, body []WeightedLiteral) {
	b.printf("minimize(%d, {%s})", priority, weightedLiteralsString(body))
}

func (b *TextBackend) Project(atoms []AtomID) {
	b.printf("project({%s})", atomIDsString(atoms))
}

func (b *TextBackend) External(atom AtomID, value domain.ExternalValue) {
	b.printf("external(%d, %s)", atom, externalValueString(value))
}

func (b *TextBackend) Assume(literals []AtomID) {
	b.printf("assume({%s})", atomIDsString(literals))
}

func (b *TextBackend) Heuristic(atom AtomID, modifier HeuristicModifier, bias, priority int, condition []AtomID) {
	b.printf("heuristic(%d, %s, %d, %d, {%s})", atom, heuristicModifierString(modifier), bias, priority, atomIDsString(condition))
}

func (b *TextBackend) AcycEdge(u, v AtomID, condition []AtomID) {
	b.printf("acycEdge(%d, %d, {%s})", u, v, atomIDsString(condition))
}

func (b *TextBackend) TheoryTerm(term TheoryTerm) {
	switch term.Kind {
	case TheoryTermNumber:
		b.printf("theoryTerm(%d, number=%d)", term.ID, term.Number)
	case TheoryTermString:
		b.printf("theoryTerm(%d, string=%q)", term.ID, term.String)
	default:
		b.printf("theoryTerm(%d, function, args={%v})", term.ID, term.Args)
	}
}

func (b *TextBackend) TheoryElement(id int, terms []int, condition []AtomID) {
	b.printf("theoryElement(%d, terms=%v, {%s})", id, terms, atomIDsString(condition))
}

func (b *TextBackend) TheoryAtom(id int, term int, elements []int, guard *TheoryGuard) {
	if guard == nil {
		b.printf("theoryAtom(%d, %d, elements=%v)", id, term, elements)
		return
	}
	b.printf("theoryAtom(%d, %d, elements=%v, guard=%s %d)", id, term, elements, guard.Op, guard.Term)
}

func (b *TextBackend) Output(symbol string, condition []AtomID) {
	b.printf("output(%q, {%s})", symbol, atomIDsString(condition))
}

func externalValueString(v domain.ExternalValue) string {
	switch v {
	case domain.ExternalTrue:
		return "true"
	case domain.ExternalFalse:
		return "false"
	case domain.ExternalFree:
		return "free"
	case domain.ExternalReleased:
		return "release"
	default:
		return "unset"
	}
}

func heuristicModifierString(m HeuristicModifier) string {
	switch m {
	case HeuristicLevel:
		return "level"
	case HeuristicSign:
		return "sign"
	case HeuristicFactor:
		return "factor"
	case HeuristicInit:
		return "init"
	case HeuristicTrue:
		return "true"
	case HeuristicFalse:
		return "false"
	default:
		return "?"
	}
}

var _ Backend = (*TextBackend)(nil)
