package domain

import (
	"testing"

	"groundcore/symbol"
)

func testSig(s *symbol.Store, name string, arity uint32) symbol.Signature {
	return symbol.Signature{Name: s.Intern(name), Arity: arity, Sign: true}
}

func TestReserveThenDefineIsIdempotent(t *testing.T) {
	s := symbol.NewStore()
	d := New(testSig(s, "edge", 2), s)

	sym := s.CreateFun("edge", []symbol.Symbol{s.CreateNum(1), s.CreateNum(2)}, true)
	a1, isNew := d.Reserve(sym)
	if !isNew {
		t.Fatalf("expected first reserve to be new")
	}
	if a1.Defined {
		t.Fatalf("reserve alone must not mark Defined")
	}
	a2, isNew2 := d.Define(sym, true)
	if isNew2 {
		t.Fatalf("expected second call to find the existing atom")
	}
	if a1 != a2 {
		t.Fatalf("expected the same atom instance")
	}
	if !a2.Defined || !a2.Fact {
		t.Fatalf("expected Defined and Fact to be set")
	}
	if d.Size() != 1 {
		t.Fatalf("expected domain size 1, got %d", d.Size())
	}
}

func TestGenerationPartitionsNewOld(t *testing.T) {
	s := symbol.NewStore()
	d := New(testSig(s, "p", 1), s)

	one := s.CreateFun("p", []symbol.Symbol{s.CreateNum(1)}, true)
	d.Define(one, true)
	d.AdvanceGeneration()

	two := s.CreateFun("p", []symbol.Symbol{s.CreateNum(2)}, true)
	d.Define(two, true)

	oldAtom, ok := d.Lookup(one, MatchOld)
	if !ok || oldAtom.Sym != one {
		t.Fatalf("expected old atom lookup to succeed")
	}
	if _, ok := d.Lookup(two, MatchOld); ok {
		t.Fatalf("expected new atom to be excluded from MatchOld")
	}
	newAtom, ok := d.Lookup(two, MatchNew)
	if !ok || newAtom.Sym != two {
		t.Fatalf("expected new atom lookup to succeed under MatchNew")
	}
	if _, ok := d.Lookup(one, MatchNew); ok {
		t.Fatalf("expected old atom to be excluded from MatchNew")
	}
}

func TestIndexStreamsNewAtoms(t *testing.T) {
	s := symbol.NewStore()
	d := New(testSig(s, "edge", 2), s)
	idx := d.Add([]int{0})

	a := s.CreateFun("edge", []symbol.Symbol{s.CreateNum(1), s.CreateNum(2)}, true)
	b := s.CreateFun("edge", []symbol.Symbol{s.CreateNum(1), s.CreateNum(3)}, true)
	d.Define(a, true)
	d.Define(b, true)

	var seen []uint32
	d.Update(idx, func(uid uint32) { seen = append(seen, uid) })
	if len(seen) != 2 {
		t.Fatalf("expected 2 new atoms streamed, got %d", len(seen))
	}

	key, ok := d.KeyFor(a, idx.Positions)
	if !ok {
		t.Fatalf("expected key projection to succeed")
	}
	matches := d.LookupIndexed(idx, key, MatchAll)
	if len(matches) != 2 {
		t.Fatalf("expected both edge(1,_) atoms indexed under key 1, got %d", len(matches))
	}
}

func TestIndexHoldsDelayedAtomsUntilCleared(t *testing.T) {
	s := symbol.NewStore()
	d := New(testSig(s, "p", 1), s)
	idx := d.Add([]int{0})

	sym := s.CreateFun("p", []symbol.Symbol{s.CreateNum(1)}, true)
	atom, _ := d.Define(sym, false)
	atom.Delayed = true

	d.Update(idx, nil)
	key, _ := d.KeyFor(sym, idx.Positions)
	if len(d.LookupIndexed(idx, key, MatchAll)) != 0 {
		t.Fatalf("expected delayed atom to be withheld from the index")
	}

	atom.Delayed = false
	d.Update(idx, nil)
	if len(d.LookupIndexed(idx, key, MatchAll)) != 1 {
		t.Fatalf("expected atom to appear once no longer delayed")
	}
}

func TestCleanupRemapsUIDs(t *testing.T) {
	s := symbol.NewStore()
	d := New(testSig(s, "p", 1), s)

	keepSym := s.CreateFun("p", []symbol.Symbol{s.CreateNum(1)}, true)
	dropSym := s.CreateFun("p", []symbol.Symbol{s.CreateNum(2)}, true)
	keepAtom, _ := d.Define(keepSym, true)
	d.Define(dropSym, true)

	dropUID := keepAtom.UID + 1
	remap := d.Cleanup(func(uid uint32) bool { return uid != dropUID })

	if d.Size() != 1 {
		t.Fatalf("expected 1 atom after cleanup, got %d", d.Size())
	}
	newUID, ok := remap[keepAtom.UID]
	if !ok || newUID != 0 {
		t.Fatalf("expected kept atom remapped to uid 0, got %d ok=%v", newUID, ok)
	}
	if _, ok := d.Find(dropSym); ok {
		t.Fatalf("expected dropped symbol to no longer be findable")
	}
}
