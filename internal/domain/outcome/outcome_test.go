package outcome

import (
	"errors"
	"testing"
)

func TestOK(t *testing.T) {
	o := OK(42)
	if o.Value() != 42 {
		t.Errorf("expected 42, got %d", o.Value())
	}
	if o.IsDegraded() {
		t.Error("OK outcome must not be degraded")
	}
	if o.Reason() != nil {
		t.Errorf("expected nil reason, got %v", o.Reason())
	}
}

func TestDegraded(t *testing.T) {
	cause := errors.New("model down")
	o := Degraded("fallback", cause)
	if o.Value() != "fallback" {
		t.Errorf("expected fallback, got %q", o.Value())
	}
	if !o.IsDegraded() {
		t.Error("expected degraded outcome")
	}
	if !errors.Is(o.Reason(), cause) {
		t.Errorf("expected cause, got %v", o.Reason())
	}
}
