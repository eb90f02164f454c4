package symbol

import "testing"

func TestInternIsIdempotent(t *testing.T) {
	s := NewStore()
	a := s.Intern("foo")
	b := s.Intern("foo")
	if a != b {
		t.Fatalf("Intern(%q) returned different ids: %d vs %d", "foo", a, b)
	}
}

func TestCreateFunHashConsing(t *testing.T) {
	s := NewStore()
	x := s.CreateNum(1)
	y := s.CreateNum(2)
	a := s.CreateFun("edge", []Symbol{x, y}, false)
	b := s.CreateFun("edge", []Symbol{x, y}, false)
	if a != b {
		t.Fatalf("two equal Fun constructions produced distinct symbols: %#v vs %#v", a, b)
	}
	c := s.CreateFun("edge", []Symbol{y, x}, false)
	if a == c {
		t.Fatalf("Fun constructions with different args compared equal")
	}
}

func TestTotalOrder(t *testing.T) {
	s := NewStore()
	inf := s.CreateInf()
	sup := s.CreateSup()
	n1 := s.CreateNum(1)
	n2 := s.CreateNum(2)
	str := s.CreateStr("a")
	fun := s.CreateID("p", false)

	order := []Symbol{inf, n1, n2, str, fun, sup}
	for i := 0; i < len(order)-1; i++ {
		if s.Compare(order[i], order[i+1]) >= 0 {
			t.Fatalf("expected order[%d] < order[%d]: %v vs %v", i, i+1, order[i], order[i+1])
		}
	}
}

func TestFunOrderBySignNameArityArgs(t *testing.T) {
	s := NewStore()
	a := s.CreateID("a", false)
	b := s.CreateID("b", false)
	if s.Compare(a, b) >= 0 {
		t.Fatalf("expected a < b by name")
	}
	p1 := s.CreateFun("p", []Symbol{s.CreateNum(1)}, false)
	p2 := s.CreateFun("p", []Symbol{s.CreateNum(1), s.CreateNum(2)}, false)
	if s.Compare(p1, p2) >= 0 {
		t.Fatalf("expected lower arity to sort first")
	}
	neg := s.CreateID("p", true)
	pos := s.CreateID("p", false)
	if s.Compare(pos, neg) >= 0 {
		t.Fatalf("expected positive sign to sort before negative")
	}
}

func TestFlipSignRoundTrips(t *testing.T) {
	s := NewStore()
	p := s.CreateFun("p", []Symbol{s.CreateNum(1)}, false)
	np := s.FlipSign(p)
	sign, ok := s.Sign(np)
	if !ok || !sign {
		t.Fatalf("FlipSign did not produce a negative symbol")
	}
	back := s.FlipSign(np)
	if back != p {
		t.Fatalf("FlipSign twice did not round-trip: got %#v want %#v", back, p)
	}
}

func TestSignatureIgnoresTuples(t *testing.T) {
	s := NewStore()
	tup := s.CreateTuple([]Symbol{s.CreateNum(1), s.CreateNum(2)})
	if _, ok := s.Signature(tup); ok {
		t.Fatalf("tuple symbol should not have a predicate signature")
	}
	atom := s.CreateFun("edge", []Symbol{s.CreateNum(1), s.CreateNum(2)}, false)
	sig, ok := s.Signature(atom)
	if !ok {
		t.Fatalf("expected a signature for a named Fun symbol")
	}
	if sig.Arity != 2 || sig.Sign {
		t.Fatalf("unexpected signature: %+v", sig)
	}
}

func TestFormat(t *testing.T) {
	s := NewStore()
	sym := s.CreateFun("edge", []Symbol{s.CreateNum(1), s.CreateStr("x")}, false)
	got := s.Format(sym)
	want := `edge(1,"x")`
	if got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
	if got := s.Format(s.CreateInf()); got != "#inf" {
		t.Fatalf("Format(inf) = %q", got)
	}
}
