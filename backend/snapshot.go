package backend

import (
	"github.com/vmihailenco/msgpack/v5"

	"groundcore/domain"
)

// CallKind tags which Backend method produced a recorded Call.
type CallKind uint8

const (
	CallInitProgram CallKind = iota
	CallBeginStep
	CallEndStep
	CallRule
	CallWeightRule
	CallMinimize
	CallProject
	CallExternal
	CallAssume
	CallHeuristic
	CallAcycEdge
	CallTheoryTerm
	CallTheoryElement
	CallTheoryAtom
	CallOutput
)

// Call is one recorded Backend invocation, shaped so the whole
// sequence msgpack-encodes and round-trips byte-for-byte (spec §8
// properties 5 and 6: idempotence and round-trip, compared with
// go-cmp up to the documented atom-id renaming).
//
// Every field is tagged `msgpack:",omitempty"` so a Call only carries
// the bytes its Kind actually uses — the union-via-struct approach
// msgpack's own test suite uses for heterogeneous RPC payloads, the
// same family hashicorp-nomad's RPC layer depends on the msgpack
// family for.
type Call struct {
	Kind CallKind `msgpack:"kind"`

	Incremental bool `msgpack:",omitempty"`

	Choice     bool              `msgpack:",omitempty"`
	Head       []AtomID          `msgpack:",omitempty"`
	Body       []AtomID          `msgpack:",omitempty"`
	WeightBody []WeightedLiteral `msgpack:",omitempty"`
	LowerBound int               `msgpack:",omitempty"`

	Priority int `msgpack:",omitempty"`

	Atoms []AtomID `msgpack:",omitempty"`

	Atom      AtomID                `msgpack:",omitempty"`
	External  domain.ExternalValue  `msgpack:",omitempty"`
	Literals  []AtomID              `msgpack:",omitempty"`
	Modifier  HeuristicModifier     `msgpack:",omitempty"`
	Bias      int                   `msgpack:",omitempty"`
	Condition []AtomID              `msgpack:",omitempty"`

	U, V AtomID `msgpack:",omitempty"`

	Term          TheoryTerm   `msgpack:",omitempty"`
	TermID        int          `msgpack:",omitempty"`
	TheoryTermRef int          `msgpack:",omitempty"`
	Terms         []int        `msgpack:",omitempty"`
	Elements      []int        `msgpack:",omitempty"`
	TheoryGuard   *TheoryGuard `msgpack:",omitempty"`

	Symbol string `msgpack:",omitempty"`
}

// SnapshotBackend records every call it receives, for §8 properties 5
// (idempotence) and 6 (round-trip): two runs over the same input and
// config must produce Encode() outputs that are cmp.Equal once atom
// ids are canonicalized.
type SnapshotBackend struct {
	Calls []Call
}

// NewSnapshotBackend returns an empty recording backend.
func NewSnapshotBackend() *SnapshotBackend { return &SnapshotBackend{} }

func (b *SnapshotBackend) InitProgram(incremental bool) {
	b.Calls = append(b.Calls, Call{Kind: CallInitProgram, Incremental: incremental})
}
func (b *SnapshotBackend) BeginStep() { b.Calls = append(b.Calls, Call{Kind: CallBeginStep}) }
func (b *SnapshotBackend) EndStep()   { b.Calls = append(b.Calls, Call{Kind: CallEndStep}) }

func (b *SnapshotBackend) Rule(choice bool, head []AtomID, body []AtomID) {
	b.Calls = append(b.Calls, Call{Kind: CallRule, Choice: choice, Head: head, Body: body})
}

func (b *SnapshotBackend) WeightRule(choice bool, head []AtomID, lowerBound int, body []WeightedLiteral) {
	b.Calls = append(b.Calls, Call{Kind: CallWeightRule, Choice: choice, Head: head, LowerBound: lowerBound, WeightBody: body})
}

func (b *SnapshotBackend) Minimize(priority int, body []WeightedLiteral) {
	b.Calls = append(b.Calls, Call{Kind: CallMinimize, Priority: priority, WeightBody: body})
}

func (b *SnapshotBackend) Project(atoms []AtomID) {
	b.Calls = append(b.Calls, Call{Kind: CallProject, Atoms: atoms})
}

func (b *SnapshotBackend) External(atom AtomID, value domain.ExternalValue) {
	b.Calls = append(b.Calls, Call{Kind: CallExternal, Atom: atom, External: value})
}

func (b *SnapshotBackend) Assume(literals []AtomID) {
	b.Calls = append(b.Calls, Call{Kind: CallAssume, Literals: literals})
}

func (b *SnapshotBackend) Heuristic(atom AtomID, modifier HeuristicModifier, bias, priority int, condition []AtomID) {
	b.Calls = append(b.Calls, Call{Kind: CallHeuristic, Atom: atom, Modifier: modifier, Bias: bias, Priority: priority, Condition: condition})
}

func (b *SnapshotBackend) AcycEdge(u, v AtomID, condition []AtomID) {
	b.Calls = append(b.Calls, Call{Kind: CallAcycEdge, U: u, V: v, Condition: condition})
}

func (b *SnapshotBackend) TheoryTerm(term TheoryTerm) {
	b.Calls = append(b.Calls, Call{Kind: CallTheoryTerm, Term: term})
}

func (b *SnapshotBackend) TheoryElement(id int, terms []int, condition []AtomID) {
	b.Calls = append(b.Calls, Call{Kind: CallTheoryElement, TermID: id, Terms: terms, Condition: condition})
}

func (b *SnapshotBackend) TheoryAtom(id int, term int, elements []int, guard *TheoryGuard) {
	b.Calls = append(b.Calls, Call{Kind: CallTheoryAtom, TermID: id, TheoryTermRef: term, Elements: elements, TheoryGuard: guard})
}

func (b *SnapshotBackend) Output(symbol string, condition []AtomID) {
	b.Calls = append(b.Calls, Call{Kind: CallOutput, Symbol: symbol, Condition: condition})
}

// Encode msgpack-encodes the recorded call sequence.
func (b *SnapshotBackend) Encode() ([]byte, error) {
	return msgpack.Marshal(b.Calls)
}

// DecodeSnapshot decodes a msgpack-encoded call sequence produced by
// Encode.
func DecodeSnapshot(data []byte) ([]Call, error) {
	var calls []Call
	if err := msgpack.Unmarshal(data, &calls); err != nil {
		return nil, err
	}
	return calls, nil
}

var _ Backend = (*SnapshotBackend)(nil)
