package checkout

// Step is a checkout wizard stage.
type Step string

const (
	StepShipping Step = "SHIPPING"
	StepPayment  Step = "PAYMENT"
	StepReview   Step = "REVIEW"
)

// Wizard walks the fixed shipping -> payment -> review sequence. Moves past
// either end are no-ops; there is no skipping or branching.
type Wizard struct {
	step Step
}

func NewWizard() *Wizard {
	return &Wizard{step: StepShipping}
}

func (w *Wizard) Step() Step {
	return w.step
}

// Next advances one stage and returns the resulting step.
func (w *Wizard) Next() Step {
	switch w.step {
	case StepShipping:
		w.step = StepPayment
	case StepPayment:
		w.step = StepReview
	}
	return w.step
}

// Prev goes back one stage and returns the resulting step.
func (w *Wizard) Prev() Step {
	switch w.step {
	case StepReview:
		w.step = StepPayment
	case StepPayment:
		w.step = StepShipping
	}
	return w.step
}
