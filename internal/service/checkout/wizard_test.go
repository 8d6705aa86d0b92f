package checkout

import "testing"

func TestWizardWalksForward(t *testing.T) {
	w := NewWizard()
	if w.Step() != StepShipping {
		t.Fatalf("expected initial step SHIPPING, got %s", w.Step())
	}
	if got := w.Next(); got != StepPayment {
		t.Fatalf("expected PAYMENT after next, got %s", got)
	}
	if got := w.Next(); got != StepReview {
		t.Fatalf("expected REVIEW after next, got %s", got)
	}
	if got := w.Next(); got != StepReview {
		t.Fatalf("next from REVIEW must stay at REVIEW, got %s", got)
	}
}

func TestWizardWalksBackward(t *testing.T) {
	w := NewWizard()
	w.Next()
	if got := w.Prev(); got != StepShipping {
		t.Fatalf("expected SHIPPING after prev, got %s", got)
	}
	if got := w.Prev(); got != StepShipping {
		t.Fatalf("prev from SHIPPING must stay at SHIPPING, got %s", got)
	}
}
