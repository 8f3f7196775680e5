package service

// FailurePolicy decides what a multi-step operation does when one step fails
type FailurePolicy int

const (
	// FailFast stops at the first failing step; later steps are never attempted
	FailFast FailurePolicy = iota
	// BestEffort records each failure and carries on with the remaining steps
	BestEffort
)

func (p FailurePolicy) String() string {
	if p == BestEffort {
		return "best-effort"
	}
	return "fail-fast"
}

// Per-operation policies
const (
	migrationPolicy   = FailFast
	optimizePolicy    = BestEffort
	envVariablePolicy = BestEffort
)

type step struct {
	name string
	run  func() error
}

type stepOutcome struct {
	name string
	err  error
}

// runSteps executes steps in order under the given policy. Under FailFast the
// returned error is the failing step's error and the outcomes end with that step.
func runSteps(policy FailurePolicy, steps []step) ([]stepOutcome, error) {
	outcomes := make([]stepOutcome, 0, len(steps))
	for _, s := range steps {
		err := s.run()
		outcomes = append(outcomes, stepOutcome{name: s.name, err: err})
		if err != nil && policy == FailFast {
			return outcomes, err
		}
	}
	return outcomes, nil
}
