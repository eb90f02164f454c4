package arena

import "testing"

func TestInsertAssignsMonotonicIDs(t *testing.T) {
	a := New[string]()
	id0 := a.Insert("zero")
	id1 := a.Insert("one")

	if id0 != 0 || id1 != 1 {
		t.Fatalf("expected ids 0,1, got %d,%d", id0, id1)
	}
	if a.Get(id0) != "zero" || a.Get(id1) != "one" {
		t.Fatalf("unexpected Get results")
	}
	if a.Len() != 2 {
		t.Fatalf("expected len 2, got %d", a.Len())
	}
}

func TestCompactRenumbersSurvivorsAndCallsReindex(t *testing.T) {
	type item struct {
		label string
		id    ID
	}
	a := New[*item]()
	items := []*item{{label: "a"}, {label: "b"}, {label: "c"}}
	for _, it := range items {
		it.id = a.Insert(it)
	}

	// Drop "b" (id 1); "a" and "c" survive and should renumber to 0,1.
	remap := a.Compact(
		func(id ID, v *item) bool { return v.label != "b" },
		func(v *item, newID ID) { v.id = newID },
	)

	if a.Len() != 2 {
		t.Fatalf("expected 2 survivors, got %d", a.Len())
	}
	if items[0].id != 0 {
		t.Fatalf("expected survivor a reindexed to 0, got %d", items[0].id)
	}
	if items[2].id != 1 {
		t.Fatalf("expected survivor c reindexed to 1, got %d", items[2].id)
	}
	if _, ok := remap[1]; ok {
		t.Fatalf("expected removed id 1 to be absent from the remap")
	}
	if remap[0] != 0 || remap[2] != 1 {
		t.Fatalf("unexpected remap: %v", remap)
	}
	if a.Get(0).label != "a" || a.Get(1).label != "c" {
		t.Fatalf("unexpected post-compact contents")
	}
}
