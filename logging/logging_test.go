package logging

import (
	"errors"
	"testing"

	"groundcore/config"
)

func TestWarnDeduplicatesPerLocation(t *testing.T) {
	l := New(config.New())
	loc := Location{File: "p.lp", Line: 3, Col: 1}
	if err := l.Warn(Warning{Category: config.WarnAtomUndefined, Location: loc, Message: "q/1 undefined"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Warn(Warning{Category: config.WarnAtomUndefined, Location: loc, Message: "q/1 undefined again"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Warnings()) != 1 {
		t.Fatalf("expected dedup by (category, location), got %d warnings", len(l.Warnings()))
	}
}

func TestWarnGatedCategorySkipped(t *testing.T) {
	cfg := config.New(config.WithWarningGate(config.WarnAtomUndefined, false))
	l := New(cfg)
	if err := l.Warn(Warning{Category: config.WarnAtomUndefined, Location: Location{Line: 1}, Message: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Warnings()) != 0 {
		t.Fatalf("expected gated category to be dropped, got %d", len(l.Warnings()))
	}
}

func TestWarnTooManyMessages(t *testing.T) {
	cfg := config.New(config.WithMessageLimit(2))
	l := New(cfg)
	for i := 0; i < 2; i++ {
		if err := l.Warn(Warning{Category: config.WarnOther, Location: Location{Line: i}, Message: "x"}); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}
	err := l.Warn(Warning{Category: config.WarnOther, Location: Location{Line: 99}, Message: "x"})
	if !errors.Is(err, ErrTooManyMessages) {
		t.Fatalf("expected ErrTooManyMessages, got %v", err)
	}
}

func TestErrJoinsAllWarnings(t *testing.T) {
	l := New(config.New())
	l.Warn(Warning{Category: config.WarnOther, Location: Location{Line: 1}, Message: "a"})
	l.Warn(Warning{Category: config.WarnOther, Location: Location{Line: 2}, Message: "b"})
	err := l.Err()
	if err == nil {
		t.Fatalf("expected a non-nil joined error")
	}
	if len(l.Warnings()) != 2 {
		t.Fatalf("expected 2 warnings joined, got %d", len(l.Warnings()))
	}
}
