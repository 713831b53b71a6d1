package interp

import "github.com/petravm/petravm/internal/petravm/field"

// Access is one VROM read or write performed while executing an
// instruction, named by its absolute VROM slot. RAM loads and stores
// are not recorded.
type Access struct {
	Slot  uint32
	Value uint32
}

// Record is one append-only trace tuple: (PC, opcode, operand reads,
// resulting writes), surfaced to the prover collaborator.
type Record struct {
	PC     field.B32
	Op     string
	Reads  []Access
	Writes []Access
}

// HaltKind classifies how a run ended.
type HaltKind int

const (
	// HaltRunning is the zero value; never reported in a finished Halt.
	HaltRunning HaltKind = iota
	HaltSuccess
	HaltTrap
	HaltError
)

func (k HaltKind) String() string {
	switch k {
	case HaltSuccess:
		return "success"
	case HaltTrap:
		return "trap"
	case HaltError:
		return "error"
	default:
		return "running"
	}
}

// Halt describes why Run stopped stepping.
type Halt struct {
	Kind     HaltKind
	TrapCode uint8
	Err      error
}

func (h *Halt) Error() string {
	switch h.Kind {
	case HaltSuccess:
		return "halted: success"
	case HaltTrap:
		return "halted: trap"
	case HaltError:
		return h.Err.Error()
	default:
		return "running"
	}
}
