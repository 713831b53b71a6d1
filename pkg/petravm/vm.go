package petravm

import (
	"github.com/petravm/petravm/internal/petravm/interp"
	"github.com/petravm/petravm/internal/petravm/lower"
	"github.com/petravm/petravm/internal/petravm/memory"
	"github.com/petravm/petravm/internal/petravm/parser"
)

// Assemble runs the parser and lowerer over src and reports the
// resulting label→PC map and per-label frame sizes, without executing
// anything.
func Assemble(src string) (*AssembleResult, error) {
	lowered, err := assembleProgram(src)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]uint32, len(lowered.Labels))
	for name, pc := range lowered.Labels {
		labels[name] = uint32(pc)
	}

	return &AssembleResult{
		Labels:        labels,
		FrameSizes:    lowered.FrameSize,
		InstructionCt: len(lowered.Instructions),
		ProgramDigest: programDigest(lowered.Instructions),
	}, nil
}

func assembleProgram(src string) (*lower.Program, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return nil, wrapErr(ErrParse, "parsing source", err)
	}
	lowered, err := lower.Lower(prog)
	if err != nil {
		return nil, wrapErr(ErrLower, "lowering program", err)
	}
	return lowered, nil
}

// Run assembles src and executes it to completion (or until cfg's step
// budget is exhausted), driving Parser→Lowerer→Interpreter end to end.
// A nil cfg runs with DefaultRunConfig(). The returned *Result is
// populated even when err is non-nil (trap and error halts still
// report steps/trace/digests).
func Run(src string, cfg *RunConfig) (*Result, error) {
	if cfg == nil {
		cfg = DefaultRunConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lowered, err := assembleProgram(src)
	if err != nil {
		return nil, err
	}

	oracle := cfg.Oracle
	if oracle == nil {
		reserved := uint32(2)
		for slot := range cfg.Args {
			if slot+1 > reserved {
				reserved = slot + 1
			}
		}
		oracle = memory.NewZeroOracle(reserved)
	}

	vrom := memory.New(oracle, cfg.MaxVromSlots)
	if err := vrom.Preset(0, 0); err != nil {
		return nil, wrapErr(ErrExecution, "presetting entry return-pc sentinel", err)
	}
	for slot, value := range cfg.Args {
		if slot == 0 {
			continue
		}
		if err := vrom.Preset(slot, value); err != nil {
			return nil, wrapErr(ErrExecution, "presetting argument", err)
		}
	}

	prom := memory.NewPROM(lowered.Instructions)
	ram := memory.NewRAM(cfg.MaxRamBytes)

	m := interp.New(prom, vrom, ram, lowered.EntryPC, 0, interp.Config{MaxSteps: cfg.MaxSteps})
	halt := m.Run()

	res := &Result{
		Steps:         m.Steps(),
		FinalPC:       uint32(m.PC()),
		FinalFP:       m.FP(),
		Trace:         convertTrace(m.Trace()),
		ProgramDigest: programDigest(lowered.Instructions),
		TraceDigest:   traceDigest(m.Trace()),
	}

	switch halt.Kind {
	case interp.HaltSuccess:
		res.Halt = HaltSuccess
		return res, nil
	case interp.HaltTrap:
		res.Halt = HaltTrap
		res.TrapCode = halt.TrapCode
		return res, wrapErr(ErrTrap, "program executed TRAP", halt.Err)
	default:
		res.Halt = HaltError
		if _, ok := halt.Err.(*interp.StepBudget); ok {
			return res, wrapErr(ErrStepBudget, "exceeded step budget", halt.Err)
		}
		return res, wrapErr(ErrExecution, "execution halted with an error", halt.Err)
	}
}

func convertTrace(records []interp.Record) []TraceRecord {
	out := make([]TraceRecord, len(records))
	for i, r := range records {
		out[i] = TraceRecord{
			PC:     uint32(r.PC),
			Op:     r.Op,
			Reads:  convertAccess(r.Reads),
			Writes: convertAccess(r.Writes),
		}
	}
	return out
}

func convertAccess(accesses []interp.Access) []Access {
	out := make([]Access, len(accesses))
	for i, a := range accesses {
		out[i] = Access{Slot: a.Slot, Value: a.Value}
	}
	return out
}
