package interp

import "fmt"

// HintMismatch reports a prover-hint ("!") value that disagrees with
// the opcode's own computed semantics.
type HintMismatch struct {
	Op       string
	Hinted   uint32
	Computed uint32
}

func (e *HintMismatch) Error() string {
	return fmt.Sprintf("%s: hinted value %d does not match computed value %d", e.Op, e.Hinted, e.Computed)
}

// StepBudget reports that an embedder-imposed step cap was exceeded.
type StepBudget struct {
	Limit uint64
}

func (e *StepBudget) Error() string {
	return fmt.Sprintf("exceeded step budget of %d instructions", e.Limit)
}
