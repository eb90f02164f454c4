package config

import "testing"

func TestNewDefaults(t *testing.T) {
	c := New()
	if c.PreserveFacts() || c.ReifySCCs() || c.ReifySteps() {
		t.Fatalf("expected every bool knob to default false")
	}
	if c.DebugMode() != DebugOff {
		t.Fatalf("expected default debug mode off")
	}
	if c.MessageLimit() != 0 {
		t.Fatalf("expected default message limit 0 (unlimited)")
	}
	if !c.WarningEnabled(WarnAtomUndefined) {
		t.Fatalf("expected every warning category enabled by default")
	}
}

func TestOptionsApply(t *testing.T) {
	c := New(
		WithPreserveFacts(true),
		WithDebugMode(DebugTranslate),
		WithMessageLimit(50),
		WithWarningGate(WarnAtomUndefined, false),
	)
	if !c.PreserveFacts() {
		t.Fatalf("expected preserveFacts true")
	}
	if c.DebugMode() != DebugTranslate {
		t.Fatalf("expected DebugTranslate")
	}
	if c.MessageLimit() != 50 {
		t.Fatalf("expected message limit 50, got %d", c.MessageLimit())
	}
	if c.WarningEnabled(WarnAtomUndefined) {
		t.Fatalf("expected atom-undefined gated off")
	}
	if !c.WarningEnabled(WarnOther) {
		t.Fatalf("expected other categories to stay enabled")
	}
}
