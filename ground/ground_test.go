package ground

import (
	"sort"
	"testing"

	"groundcore/domain"
	"groundcore/literal"
	"groundcore/symbol"
	"groundcore/term"
)

func testSig(s *symbol.Store, name string, arity uint32) symbol.Signature {
	return symbol.Signature{Name: s.Intern(name), Arity: arity, Sign: true}
}

// TestTransitiveClosureFixpoint wires path(X,Y):-edge(X,Y) and
// path(X,Z):-edge(X,Y),path(Y,Z) through a Scheduler and checks the
// recursive rule reaches every transitive edge, matching spec §4.6's
// "run until no instantiator in the SCC produces anything new".
func TestTransitiveClosureFixpoint(t *testing.T) {
	store := symbol.NewStore()
	edgeDomain := domain.New(testSig(store, "edge", 2), store)
	pathDomain := domain.New(testSig(store, "path", 2), store)

	for _, e := range [][2]int32{{1, 2}, {2, 3}, {3, 4}} {
		sym := store.CreateFun("edge", []symbol.Symbol{store.CreateNum(e[0]), store.CreateNum(e[1])}, true)
		edgeDomain.Define(sym, true)
	}

	// path(X,Y) :- edge(X,Y).
	x1, y1 := term.NewVarCell("X"), term.NewVarCell("Y")
	r1Body := []literal.Literal{
		literal.NewPredicate(store, edgeDomain,
			&term.FunctionTerm{Name: "edge", Args: []term.Term{term.NewVarRef(x1), term.NewVarRef(y1)}, Sign: true},
			literal.SignPos, false),
	}
	r1Heads := []HeadAtomSpec{{
		Domain: pathDomain,
		Repr:   &term.FunctionTerm{Name: "path", Args: []term.Term{term.NewVarRef(x1), term.NewVarRef(y1)}, Sign: true},
	}}
	r1 := NewRule(store, HeadNormal, r1Heads, r1Body, false, &term.Trail{}, nil)
	if err := r1.StartLinearize(true); err != nil {
		t.Fatalf("r1 StartLinearize: %v", err)
	}

	// path(X,Z) :- edge(X,Y), path(Y,Z).
	x2, y2, z2 := term.NewVarCell("X"), term.NewVarCell("Y"), term.NewVarCell("Z")
	r2Body := []literal.Literal{
		literal.NewPredicate(store, edgeDomain,
			&term.FunctionTerm{Name: "edge", Args: []term.Term{term.NewVarRef(x2), term.NewVarRef(y2)}, Sign: true},
			literal.SignPos, false),
		literal.NewPredicate(store, pathDomain,
			&term.FunctionTerm{Name: "path", Args: []term.Term{term.NewVarRef(y2), term.NewVarRef(z2)}, Sign: true},
			literal.SignPos, true),
	}
	r2Heads := []HeadAtomSpec{{
		Domain: pathDomain,
		Repr:   &term.FunctionTerm{Name: "path", Args: []term.Term{term.NewVarRef(x2), term.NewVarRef(z2)}, Sign: true},
	}}
	r2 := NewRule(store, HeadNormal, r2Heads, r2Body, true, &term.Trail{}, nil)
	if err := r2.StartLinearize(true); err != nil {
		t.Fatalf("r2 StartLinearize: %v", err)
	}

	sc := NewScheduler()
	for _, in := range r1.Instantiators() {
		sc.Watch(edgeDomain, in)
	}
	for _, in := range r2.Instantiators() {
		sc.Watch(edgeDomain, in)
		sc.Watch(pathDomain, in)
	}

	all := append(append([]*Instantiator{}, r1.Instantiators()...), r2.Instantiators()...)
	sc.RunToFixpoint([]*domain.PredicateDomain{edgeDomain, pathDomain}, all)

	if got, want := pathDomain.Size(), 6; got != want {
		t.Fatalf("expected 6 path facts, got %d", got)
	}

	var got []string
	for uid := 0; uid < pathDomain.Size(); uid++ {
		atom := pathDomain.AtomByUID(uint32(uid))
		if !atom.Fact {
			t.Fatalf("expected every derived path atom to be a fact: %s", store.Format(atom.Sym))
		}
		got = append(got, store.Format(atom.Sym))
	}
	sort.Strings(got)

	want := []string{
		"path(1,2)", "path(1,3)", "path(1,4)",
		"path(2,3)", "path(2,4)",
		"path(3,4)",
	}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// TestRuleChoiceHeadNeverPromotesFact checks that a choice-rule head
// atom is defined but never promoted to Fact by its body, even when
// the body is itself entirely factual (spec §4.7: "a choice head is
// never itself promoted to fact by its body").
func TestRuleChoiceHeadNeverPromotesFact(t *testing.T) {
	store := symbol.NewStore()
	baseDomain := domain.New(testSig(store, "q", 1), store)
	headDomain := domain.New(testSig(store, "p", 1), store)

	sym := store.CreateFun("q", []symbol.Symbol{store.CreateNum(1)}, true)
	baseDomain.Define(sym, true)

	x := term.NewVarCell("X")
	body := []literal.Literal{
		literal.NewPredicate(store, baseDomain,
			&term.FunctionTerm{Name: "q", Args: []term.Term{term.NewVarRef(x)}, Sign: true},
			literal.SignPos, false),
	}
	heads := []HeadAtomSpec{{
		Domain: headDomain,
		Repr:   &term.FunctionTerm{Name: "p", Args: []term.Term{term.NewVarRef(x)}, Sign: true},
	}}
	r := NewRule(store, HeadChoice, heads, body, false, &term.Trail{}, nil)
	if err := r.StartLinearize(true); err != nil {
		t.Fatalf("StartLinearize: %v", err)
	}
	for _, in := range r.Instantiators() {
		in.Pump(nil)
	}

	if headDomain.Size() != 1 {
		t.Fatalf("expected head atom to be defined, got size %d", headDomain.Size())
	}
	atom := headDomain.AtomByUID(0)
	if !atom.Defined {
		t.Fatalf("expected choice head atom to be Defined")
	}
	if atom.Fact {
		t.Fatalf("expected choice head atom to NOT be promoted to Fact")
	}
}

// TestPropagateIsDirtyGated checks that a rule whose body keeps
// matching the same already-defined head never re-enqueues its
// domain, which is what lets Scheduler.Run's queue actually drain
// (see DESIGN.md ground/ "dirty-gated Propagate").
func TestPropagateIsDirtyGated(t *testing.T) {
	store := symbol.NewStore()
	baseDomain := domain.New(testSig(store, "q", 1), store)
	headDomain := domain.New(testSig(store, "p", 1), store)

	sym := store.CreateFun("q", []symbol.Symbol{store.CreateNum(1)}, true)
	baseDomain.Define(sym, true)

	x := term.NewVarCell("X")
	body := []literal.Literal{
		literal.NewPredicate(store, baseDomain,
			&term.FunctionTerm{Name: "q", Args: []term.Term{term.NewVarRef(x)}, Sign: true},
			literal.SignPos, false),
	}
	heads := []HeadAtomSpec{{
		Domain: headDomain,
		Repr:   &term.FunctionTerm{Name: "p", Args: []term.Term{term.NewVarRef(x)}, Sign: true},
	}}
	r := NewRule(store, HeadNormal, heads, body, false, &term.Trail{}, nil)
	if err := r.StartLinearize(true); err != nil {
		t.Fatalf("StartLinearize: %v", err)
	}

	sc := NewScheduler()
	for _, in := range r.Instantiators() {
		sc.Watch(baseDomain, in)
	}
	sc.RunToFixpoint([]*domain.PredicateDomain{baseDomain, headDomain}, r.Instantiators())

	if headDomain.Size() != 1 {
		t.Fatalf("expected exactly one head atom, got %d", headDomain.Size())
	}
	// A second fixpoint drive over the same (unchanged) facts must be a
	// true no-op: nothing new to derive, nothing re-enqueued, and the
	// queue must already be empty going in.
	sc.RunToFixpoint([]*domain.PredicateDomain{baseDomain, headDomain}, r.Instantiators())
	if headDomain.Size() != 1 {
		t.Fatalf("expected head domain size to stay 1 after a no-op re-run, got %d", headDomain.Size())
	}
}
