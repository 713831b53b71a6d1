// Package petravm is the public embedding surface for PetraVM: assemble
// and run .pvasm source through the parser, lowerer, memory model, and
// interpreter in internal/petravm, without pulling in the CLI's Cobra
// dependency.
//
// # Quick start
//
//	res, err := petravm.Run(source, petravm.DefaultRunConfig().
//		WithArg(2, 7).
//		WithArg(3, 5))
//	if err != nil {
//		var vmErr *petravm.VMError
//		if errors.As(err, &vmErr) && vmErr.Code == petravm.ErrTrap {
//			fmt.Println("program trapped:", res.TrapCode)
//		}
//	}
//
// Assemble alone runs only the parser and lowerer, for inspecting a
// program's label→PC map and frame sizes without executing it.
package petravm
