package ground

import (
	"testing"

	"groundcore/domain"
	"groundcore/symbol"
)

// TestAggregateCountBecomesFactOnceLowerBoundGuaranteed checks #count{...} >= 2
// narrows Satisfiable/Fact as elements resolve from unknown to true,
// becoming a guaranteed fact only once the true count alone already
// meets the bound regardless of the remaining unknowns (spec §3
// Aggregate State).
func TestAggregateCountBecomesFactOnceLowerBoundGuaranteed(t *testing.T) {
	s := symbol.NewStore()
	agg := NewAggregate(s, AggCount, s.CreateNum(2), s.CreateSup())

	agg.Accumulate("a", 0, elemUnknown)
	agg.Accumulate("b", 0, elemUnknown)
	if !agg.Satisfiable {
		t.Fatalf("expected satisfiable with two open candidates toward a >=2 bound")
	}
	if agg.Fact {
		t.Fatalf("expected not yet a fact while both elements are still unknown")
	}

	agg.Accumulate("a", 0, elemTrue)
	if agg.Fact {
		t.Fatalf("expected not yet a fact with only one of two confirmed true")
	}

	agg.Accumulate("b", 0, elemTrue)
	if !agg.Fact {
		t.Fatalf("expected fact once both elements are confirmed true")
	}
	if !agg.Satisfiable {
		t.Fatalf("expected satisfiable once fact")
	}
}

// TestAggregateCountUnsatisfiableOnceTrueCountExceedsUpperBound checks
// that #count{...} <= 1 goes unsatisfiable once two elements are
// confirmed true.
func TestAggregateCountUnsatisfiableOnceTrueCountExceedsUpperBound(t *testing.T) {
	s := symbol.NewStore()
	agg := NewAggregate(s, AggCount, s.CreateInf(), s.CreateNum(1))

	agg.Accumulate("a", 0, elemTrue)
	if !agg.Satisfiable {
		t.Fatalf("expected satisfiable with one true element under a <=1 bound")
	}

	agg.Accumulate("b", 0, elemTrue)
	if agg.Satisfiable {
		t.Fatalf("expected unsatisfiable once two elements are true against a <=1 bound")
	}
}

// TestAggregateSumNarrowsByWeightSign checks #sum{...} = 3: an unknown
// positive-weight element only ever widens the upper bound, an unknown
// negative-weight element only ever widens the lower bound (spec §3:
// per-function interval narrowing).
func TestAggregateSumNarrowsByWeightSign(t *testing.T) {
	s := symbol.NewStore()
	agg := NewAggregate(s, AggSum, s.CreateNum(3), s.CreateNum(3))

	agg.Accumulate("pos", 5, elemUnknown)
	if agg.curLo != 0 || agg.curHi != 5 {
		t.Fatalf("expected [0,5] after one unknown +5 element, got [%d,%d]", agg.curLo, agg.curHi)
	}

	agg.Accumulate("neg", -2, elemUnknown)
	if agg.curLo != -2 || agg.curHi != 5 {
		t.Fatalf("expected [-2,5] after adding an unknown -2 element, got [%d,%d]", agg.curLo, agg.curHi)
	}

	agg.Accumulate("pos", 5, elemTrue)
	agg.Accumulate("neg", -2, elemFalse)
	if agg.curLo != 5 || agg.curHi != 5 {
		t.Fatalf("expected [5,5] once pos resolves true and neg resolves false, got [%d,%d]", agg.curLo, agg.curHi)
	}
	if agg.Satisfiable {
		t.Fatalf("expected sum=5 to be unsatisfiable against a =3 bound")
	}
}

// TestAggregateCompleteWritesAtomVerdict checks Complete copies the
// current Satisfiable/Fact verdict onto the owning domain.Atom.
func TestAggregateCompleteWritesAtomVerdict(t *testing.T) {
	s := symbol.NewStore()
	agg := NewAggregate(s, AggCount, s.CreateNum(1), s.CreateSup())
	agg.Accumulate("a", 0, elemTrue)

	atom := &domain.Atom{}
	agg.Complete(atom)
	if !atom.Defined || !atom.Fact {
		t.Fatalf("expected Complete to mark the atom Defined and Fact")
	}
}
