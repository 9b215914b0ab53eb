package command

// Eligibility decides whether the command may run for a given parameter.
// Implementations must not have side effects: CanExecute is also called by
// UI code polling the command state.
type Eligibility[P any] interface {
	CanExecute(param P) bool
}

// AlwaysEligible accepts every parameter.
type AlwaysEligible[P any] struct{}

// CanExecute returns true.
func (AlwaysEligible[P]) CanExecute(P) bool {
	return true
}

// EligibilityFunc adapts a predicate to Eligibility.
type EligibilityFunc[P any] func(param P) bool

// CanExecute calls f.
func (f EligibilityFunc[P]) CanExecute(param P) bool {
	return f(param)
}

// NewEligibilityFunc wraps fn. A nil fn accepts every parameter.
func NewEligibilityFunc[P any](fn func(P) bool) EligibilityFunc[P] {
	if fn == nil {
		return func(P) bool { return true }
	}
	return fn
}
