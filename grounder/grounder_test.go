package grounder

import (
	"testing"

	"groundcore/backend"
	"groundcore/config"
	"groundcore/domain"
	"groundcore/ground"
	"groundcore/ir"
	"groundcore/literal"
	"groundcore/logging"
	"groundcore/symbol"
	"groundcore/term"
)

func testSig(s *symbol.Store, name string, arity uint32) symbol.Signature {
	return symbol.Signature{Name: s.Intern(name), Arity: arity, Sign: true}
}

// TestRunGroundsTransitiveClosure drives spec §8 scenario S1 (simple
// recursion) end to end through ir.Program + Grounder.Run + a
// backend.SnapshotBackend, checking both the derived domain state and
// that every derivation reaches the backend exactly once.
func TestRunGroundsTransitiveClosure(t *testing.T) {
	store := symbol.NewStore()
	edgeDomain := domain.New(testSig(store, "edge", 2), store)
	pathDomain := domain.New(testSig(store, "path", 2), store)

	for _, e := range [][2]int32{{1, 2}, {2, 3}, {3, 4}} {
		sym := store.CreateFun("edge", []symbol.Symbol{store.CreateNum(e[0]), store.CreateNum(e[1])}, true)
		edgeDomain.Define(sym, true)
	}

	// path(X,Y) :- edge(X,Y).
	x1, y1 := term.NewVarCell("X"), term.NewVarCell("Y")
	rule1 := ir.Rule{
		Kind: ground.HeadNormal,
		Heads: []ground.HeadAtomSpec{{
			Domain: pathDomain,
			Repr:   &term.FunctionTerm{Name: "path", Args: []term.Term{term.NewVarRef(x1), term.NewVarRef(y1)}, Sign: true},
		}},
		Body: []ir.BodySpec{
			ir.PredicateBody(edgeDomain, literal.SignPos, func(recursive bool) literal.Literal {
				return literal.NewPredicate(store, edgeDomain,
					&term.FunctionTerm{Name: "edge", Args: []term.Term{term.NewVarRef(x1), term.NewVarRef(y1)}, Sign: true},
					literal.SignPos, recursive)
			}),
		},
	}

	// path(X,Z) :- edge(X,Y), path(Y,Z).
	x2, y2, z2 := term.NewVarCell("X"), term.NewVarCell("Y"), term.NewVarCell("Z")
	rule2 := ir.Rule{
		Kind: ground.HeadNormal,
		Heads: []ground.HeadAtomSpec{{
			Domain: pathDomain,
			Repr:   &term.FunctionTerm{Name: "path", Args: []term.Term{term.NewVarRef(x2), term.NewVarRef(z2)}, Sign: true},
		}},
		Body: []ir.BodySpec{
			ir.PredicateBody(edgeDomain, literal.SignPos, func(recursive bool) literal.Literal {
				return literal.NewPredicate(store, edgeDomain,
					&term.FunctionTerm{Name: "edge", Args: []term.Term{term.NewVarRef(x2), term.NewVarRef(y2)}, Sign: true},
					literal.SignPos, recursive)
			}),
			ir.PredicateBody(pathDomain, literal.SignPos, func(recursive bool) literal.Literal {
				return literal.NewPredicate(store, pathDomain,
					&term.FunctionTerm{Name: "path", Args: []term.Term{term.NewVarRef(y2), term.NewVarRef(z2)}, Sign: true},
					literal.SignPos, recursive)
			}),
		},
	}

	prog := ir.Program{Steps: []ir.Step{{Rules: []ir.Rule{rule1, rule2}}}}

	snap := backend.NewSnapshotBackend()
	g := New(store, config.New(), snap)
	if err := g.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got, want := pathDomain.Size(), 6; got != want {
		t.Fatalf("expected 6 path facts, got %d", got)
	}
	for uid := 0; uid < pathDomain.Size(); uid++ {
		if !pathDomain.AtomByUID(uint32(uid)).Fact {
			t.Fatalf("expected every derived path atom to be a fact (uid %d)", uid)
		}
	}

	var ruleCalls int
	var sawInit, sawBegin, sawEnd bool
	for _, c := range snap.Calls {
		switch c.Kind {
		case backend.CallRule:
			ruleCalls++
		case backend.CallInitProgram:
			sawInit = true
		case backend.CallBeginStep:
			sawBegin = true
		case backend.CallEndStep:
			sawEnd = true
		}
	}
	if !sawInit || !sawBegin || !sawEnd {
		t.Fatalf("expected InitProgram/BeginStep/EndStep to be recorded")
	}
	// Semi-naive NEW-consumption guarantees every derivable ground atom
	// reaches Report (and therefore the backend) exactly once, so the
	// count of recorded rule() calls must equal the domain's final size.
	if ruleCalls != pathDomain.Size() {
		t.Fatalf("expected exactly one rule() call per derived atom, got %d calls for %d atoms", ruleCalls, pathDomain.Size())
	}
}

// TestStepOrdersSCCsByDependency checks that a non-recursive rule whose
// body depends on another non-recursive rule's head is grounded only
// after that dependency's SCC has already produced its facts (spec §9:
// "ground one SCC at a time" in dependency order).
func TestStepOrdersSCCsByDependency(t *testing.T) {
	store := symbol.NewStore()
	qDomain := domain.New(testSig(store, "q", 0), store)
	pDomain := domain.New(testSig(store, "p", 0), store)
	rDomain := domain.New(testSig(store, "r", 0), store)

	qSym := store.CreateFun("q", nil, true)
	qDomain.Define(qSym, true)

	// p :- q.
	ruleP := ir.Rule{
		Kind:  ground.HeadNormal,
		Heads: []ground.HeadAtomSpec{{Domain: pDomain, Repr: term.NewValueTerm(store.CreateFun("p", nil, true))}},
		Body: []ir.BodySpec{
			ir.PredicateBody(qDomain, literal.SignPos, func(recursive bool) literal.Literal {
				return literal.NewPredicate(store, qDomain, &term.FunctionTerm{Name: "q", Args: nil, Sign: true}, literal.SignPos, recursive)
			}),
		},
	}
	// r :- p.
	ruleR := ir.Rule{
		Kind:  ground.HeadNormal,
		Heads: []ground.HeadAtomSpec{{Domain: rDomain, Repr: term.NewValueTerm(store.CreateFun("r", nil, true))}},
		Body: []ir.BodySpec{
			ir.PredicateBody(pDomain, literal.SignPos, func(recursive bool) literal.Literal {
				return literal.NewPredicate(store, pDomain, &term.FunctionTerm{Name: "p", Args: nil, Sign: true}, literal.SignPos, recursive)
			}),
		},
	}

	// Declared in dependency-hostile order: r's rule before p's rule.
	prog := ir.Program{Steps: []ir.Step{{Rules: []ir.Rule{ruleR, ruleP}}}}

	snap := backend.NewSnapshotBackend()
	g := New(store, config.New(), snap)
	if err := g.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if pDomain.Size() != 1 || !pDomain.AtomByUID(0).Fact {
		t.Fatalf("expected p to be derived as a fact")
	}
	if rDomain.Size() != 1 || !rDomain.AtomByUID(0).Fact {
		t.Fatalf("expected r to be derived as a fact once p was already available")
	}
}

// TestStepWarnsOnceForUndefinedAtom drives spec §7's atom-undefined
// warning: a rule body referencing a predicate with no derivations and
// no #external declaration must warn exactly once per symbolic
// location, even though the rule itself derives nothing.
func TestStepWarnsOnceForUndefinedAtom(t *testing.T) {
	store := symbol.NewStore()
	qDomain := domain.New(testSig(store, "q", 0), store)
	pDomain := domain.New(testSig(store, "p", 0), store)

	loc := logging.Location{File: "test.lp", Line: 3, Col: 1}
	// p :- q.  (q has no facts and no #external)
	ruleP := ir.Rule{
		Kind:     ground.HeadNormal,
		Heads:    []ground.HeadAtomSpec{{Domain: pDomain, Repr: term.NewValueTerm(store.CreateFun("p", nil, true))}},
		Location: loc,
		Body: []ir.BodySpec{
			ir.PredicateBody(qDomain, literal.SignPos, func(recursive bool) literal.Literal {
				return literal.NewPredicate(store, qDomain, &term.FunctionTerm{Name: "q", Args: nil, Sign: true}, literal.SignPos, recursive)
			}),
		},
	}

	prog := ir.Program{Steps: []ir.Step{{Rules: []ir.Rule{ruleP}}}}

	snap := backend.NewSnapshotBackend()
	g := New(store, config.New(), snap)
	if err := g.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if pDomain.Size() != 0 {
		t.Fatalf("expected p to remain undefined, got %d atoms", pDomain.Size())
	}
	warnings := g.Log.Warnings()
	if len(warnings) != 1 || warnings[0].Category != config.WarnAtomUndefined || warnings[0].Location != loc {
		t.Fatalf("expected exactly one atom-undefined warning at %v, got %v", loc, warnings)
	}
}

// TestRunGroundsCountAggregateAndShow drives spec §8 scenario S2 (count
// aggregate) end to end: a #count{X:p(X)} >= 2 body aggregate, fed into
// an ordinary rule through a literal.Ref, with a #show directive
// surfacing the result — exercising the StmtBodyAggregate and StmtThin
// statement kinds Grounder.Run can now instantiate directly.
func TestRunGroundsCountAggregateAndShow(t *testing.T) {
	store := symbol.NewStore()
	pDomain := domain.New(testSig(store, "p", 1), store)
	aggDomain := domain.New(testSig(store, "__agg0", 0), store)
	qDomain := domain.New(testSig(store, "q", 0), store)

	for _, n := range []int32{1, 2, 3} {
		sym := store.CreateFun("p", []symbol.Symbol{store.CreateNum(n)}, true)
		pDomain.Define(sym, true)
	}

	aggRepr := term.NewValueTerm(store.CreateFun("__agg0", nil, true))
	px := term.NewVarCell("X")
	aggRule := ir.Rule{
		StatementKind: ir.StmtBodyAggregate,
		Heads:         []ground.HeadAtomSpec{{Domain: aggDomain, Repr: aggRepr}},
		AggFn:         ground.AggCount,
		AggLo:         store.CreateNum(2),
		AggHi:         store.CreateSup(),
		Elements: []ir.ElementSpec{{
			TupleRepr: term.NewVarRef(px),
			Cond: []ir.BodySpec{
				ir.PredicateBody(pDomain, literal.SignPos, func(recursive bool) literal.Literal {
					return literal.NewPredicate(store, pDomain,
						&term.FunctionTerm{Name: "p", Args: []term.Term{term.NewVarRef(px)}, Sign: true},
						literal.SignPos, recursive)
				}),
			},
		}},
	}

	qRepr := term.NewValueTerm(store.CreateFun("q", nil, true))
	qRule := ir.Rule{
		Kind:  ground.HeadNormal,
		Heads: []ground.HeadAtomSpec{{Domain: qDomain, Repr: qRepr}},
		Body: []ir.BodySpec{
			ir.PredicateBody(aggDomain, literal.SignPos, func(recursive bool) literal.Literal {
				return literal.NewRef(store, aggDomain, literal.RefAggregate, aggRepr, literal.SignPos, recursive)
			}),
		},
	}

	showRule := ir.Rule{
		StatementKind: ir.StmtThin,
		ThinKind:      ground.ThinShow,
		ThinTerms:     []term.Term{qRepr},
		Body: []ir.BodySpec{
			ir.PredicateBody(qDomain, literal.SignPos, func(recursive bool) literal.Literal {
				return literal.NewPredicate(store, qDomain,
					&term.FunctionTerm{Name: "q", Args: nil, Sign: true}, literal.SignPos, recursive)
			}),
		},
	}

	prog := ir.Program{Steps: []ir.Step{{Rules: []ir.Rule{aggRule, qRule, showRule}}}}

	snap := backend.NewSnapshotBackend()
	g := New(store, config.New(), snap)
	if err := g.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if aggDomain.Size() != 1 || !aggDomain.AtomByUID(0).Fact {
		t.Fatalf("expected #count{X:p(X)} >= 2 to hold over 3 p/1 facts")
	}
	if qDomain.Size() != 1 || !qDomain.AtomByUID(0).Fact {
		t.Fatalf("expected q to be derived once the aggregate holds")
	}

	var shown bool
	for _, c := range snap.Calls {
		if c.Kind == backend.CallOutput && c.Symbol == "q" {
			shown = true
		}
	}
	if !shown {
		t.Fatalf("expected a #show output call for q, got %v", snap.Calls)
	}
}
