package scripthost

import (
	"errors"
	"testing"

	"groundcore/config"
	"groundcore/logging"
	"groundcore/symbol"
)

func TestCallDispatchesRegisteredFunc(t *testing.T) {
	store := symbol.NewStore()
	h := New(nil, logging.Location{})
	h.Register("double", func(store *symbol.Store, args []symbol.Symbol) ([]symbol.Symbol, error) {
		n, _ := store.Num(args[0])
		return []symbol.Symbol{store.CreateNum(n * 2)}, nil
	})

	results, err := h.Call(store, "double", []symbol.Symbol{store.CreateNum(21)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	n, _ := store.Num(results[0])
	if n != 42 {
		t.Fatalf("expected 42, got %d", n)
	}
}

func TestCallUnregisteredNameWarnsAndYieldsNoMatch(t *testing.T) {
	store := symbol.NewStore()
	log := logging.New(config.New())
	h := New(log, logging.Location{File: "p.lp", Line: 1})

	results, err := h.Call(store, "missing", nil)
	if err != nil {
		t.Fatalf("expected no error (treated as no match), got %v", err)
	}
	if results != nil {
		t.Fatalf("expected nil results for an unregistered callable, got %v", results)
	}
	if len(log.Warnings()) != 1 {
		t.Fatalf("expected exactly one warning, got %d", len(log.Warnings()))
	}
}

func TestCallFailureIsWarnedNotPropagated(t *testing.T) {
	store := symbol.NewStore()
	log := logging.New(config.New())
	h := New(log, logging.Location{})
	h.Register("boom", func(store *symbol.Store, args []symbol.Symbol) ([]symbol.Symbol, error) {
		return nil, errors.New("division by zero")
	})

	results, err := h.Call(store, "boom", nil)
	if err != nil {
		t.Fatalf("expected the callable's error to be converted to a warning, got %v", err)
	}
	if results != nil {
		t.Fatalf("expected no results on failure, got %v", results)
	}
	if len(log.Warnings()) != 1 {
		t.Fatalf("expected one warning recorded, got %d", len(log.Warnings()))
	}
}
