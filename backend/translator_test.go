package backend

import (
	"testing"

	"groundcore/config"
	"groundcore/domain"
	"groundcore/symbol"
)

func testSig(s *symbol.Store, name string, arity uint32) symbol.Signature {
	return symbol.Signature{Name: s.Intern(name), Arity: arity, Sign: true}
}

func TestIDForAssignsStartingAtTwoAndIsStable(t *testing.T) {
	store := symbol.NewStore()
	d := domain.New(testSig(store, "p", 1), store)
	atom, _ := d.Reserve(store.CreateFun("p", []symbol.Symbol{store.CreateNum(1)}, true))

	tr := NewTranslator(NewSnapshotBackend(), nil)
	id1 := tr.IDFor(d, atom)
	if id1 != 2 {
		t.Fatalf("expected first translated atom to get id 2 (0 and 1 reserved), got %d", id1)
	}
	if id2 := tr.IDFor(d, atom); id2 != id1 {
		t.Fatalf("expected IDFor to be stable across calls, got %d then %d", id1, id2)
	}
}

func TestRuleOmitsBodyWhenFactAndNotPreserving(t *testing.T) {
	store := symbol.NewStore()
	d := domain.New(testSig(store, "p", 1), store)
	head, _ := d.Define(store.CreateFun("p", []symbol.Symbol{store.CreateNum(1)}, true), true)
	bodyDom := domain.New(testSig(store, "q", 1), store)
	bodyAtom, _ := bodyDom.Define(store.CreateFun("q", []symbol.Symbol{store.CreateNum(1)}, true), true)

	snap := NewSnapshotBackend()
	tr := NewTranslator(snap, config.New())
	tr.Rule(false, []*domain.PredicateDomain{d}, []*domain.Atom{head}, true,
		[]BodyLiteralRef{{Domain: bodyDom, Atom: bodyAtom}})

	if len(snap.Calls) != 1 {
		t.Fatalf("expected exactly one recorded call, got %d", len(snap.Calls))
	}
	call := snap.Calls[0]
	if call.Kind != CallRule {
		t.Fatalf("expected a Rule call")
	}
	if len(call.Body) != 0 {
		t.Fatalf("expected a fact body to be omitted, got %v", call.Body)
	}
	if len(call.Head) != 1 || call.Head[0] != 2 {
		t.Fatalf("expected head {2}, got %v", call.Head)
	}
}

func TestRulePreservesFactBodyWhenConfigured(t *testing.T) {
	store := symbol.NewStore()
	d := domain.New(testSig(store, "p", 1), store)
	head, _ := d.Define(store.CreateFun("p", []symbol.Symbol{store.CreateNum(1)}, true), true)
	bodyDom := domain.New(testSig(store, "q", 1), store)
	bodyAtom, _ := bodyDom.Define(store.CreateFun("q", []symbol.Symbol{store.CreateNum(1)}, true), true)

	snap := NewSnapshotBackend()
	tr := NewTranslator(snap, config.New(config.WithPreserveFacts(true)))
	tr.Rule(false, []*domain.PredicateDomain{d}, []*domain.Atom{head}, true,
		[]BodyLiteralRef{{Domain: bodyDom, Atom: bodyAtom}})

	if len(snap.Calls[0].Body) != 1 {
		t.Fatalf("expected preserveFacts to keep the fact body, got %v", snap.Calls[0].Body)
	}
}

func TestRuleBodyNegationFlipsSign(t *testing.T) {
	store := symbol.NewStore()
	d := domain.New(testSig(store, "p", 0), store)
	head, _ := d.Define(store.CreateFun("p", nil, true), false)
	bodyDom := domain.New(testSig(store, "q", 0), store)
	bodyAtom, _ := bodyDom.Define(store.CreateFun("q", nil, true), false)

	snap := NewSnapshotBackend()
	tr := NewTranslator(snap, nil)
	tr.Rule(false, []*domain.PredicateDomain{d}, []*domain.Atom{head}, false,
		[]BodyLiteralRef{{Domain: bodyDom, Atom: bodyAtom, Negated: true}})

	body := snap.Calls[0].Body
	if len(body) != 1 || body[0] >= 0 {
		t.Fatalf("expected a single negated (negative) body literal, got %v", body)
	}
}
