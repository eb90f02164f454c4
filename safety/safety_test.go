package safety

import (
	"testing"

	"groundcore/domain"
	"groundcore/literal"
	"groundcore/symbol"
	"groundcore/term"
)

func newEdgeDomain(t *testing.T, s *symbol.Store) *domain.PredicateDomain {
	t.Helper()
	sig := symbol.Signature{Name: s.Intern("edge"), Arity: 2, Sign: true}
	d := domain.New(sig, s)
	d.Define(s.CreateFun("edge", []symbol.Symbol{s.CreateNum(1), s.CreateNum(2)}, true), true)
	d.Define(s.CreateFun("edge", []symbol.Symbol{s.CreateNum(2), s.CreateNum(3)}, true), true)
	return d
}

func TestLinearizeOrdersPredicateBeforeRelationThatNeedsItsOutput(t *testing.T) {
	s := symbol.NewStore()
	d := newEdgeDomain(t, s)
	x := term.NewVarCell("X")
	y := term.NewVarCell("Y")

	edgeLit := literal.NewPredicate(s, d, &term.FunctionTerm{
		Name: "edge", Args: []term.Term{term.NewVarRef(x), term.NewVarRef(y)}, Sign: true,
	}, literal.SignPos, false)
	relLit := literal.NewRelation(s, 2 /*RelLt placeholder unused directly*/, term.NewVarRef(x), term.NewVarRef(y))

	plan, err := Linearize([]literal.Literal{relLit, edgeLit}, map[string]bool{}, nil)
	if err != nil {
		t.Fatalf("expected a safe plan, got error: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(plan))
	}
	if plan[0].Literal != literal.Literal(edgeLit) {
		t.Fatalf("expected the predicate literal to be placed before the relation test")
	}
}

func TestLinearizeReportsUnsafeVariable(t *testing.T) {
	s := symbol.NewStore()
	x := term.NewVarCell("X")
	y := term.NewVarCell("Y")
	relLit := literal.NewRelation(s, 2, term.NewVarRef(x), term.NewVarRef(y))

	_, err := Linearize([]literal.Literal{relLit}, map[string]bool{}, nil)
	if err == nil {
		t.Fatalf("expected an UnsafeError")
	}
	if _, ok := err.(*UnsafeError); !ok {
		t.Fatalf("expected *UnsafeError, got %T", err)
	}
}

func TestLinearizeRecursiveRotatesNewOld(t *testing.T) {
	s := symbol.NewStore()
	d := newEdgeDomain(t, s)
	x := term.NewVarCell("X")
	y := term.NewVarCell("Y")
	z := term.NewVarCell("Z")

	lit1 := literal.NewPredicate(s, d, &term.FunctionTerm{
		Name: "edge", Args: []term.Term{term.NewVarRef(x), term.NewVarRef(y)}, Sign: true,
	}, literal.SignPos, true)
	lit2 := literal.NewPredicate(s, d, &term.FunctionTerm{
		Name: "edge", Args: []term.Term{term.NewVarRef(y), term.NewVarRef(z)}, Sign: true,
	}, literal.SignPos, true)

	plans, err := LinearizeRecursive([]literal.Literal{lit1, lit2}, map[string]bool{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected one plan per recursive literal, got %d", len(plans))
	}
}
