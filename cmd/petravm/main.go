// Command petravm is a thin front-end over pkg/petravm: assemble and
// run .pvasm source files from the shell.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petravm/petravm/pkg/petravm"
)

func main() {
	err := newRootCmd().Execute()
	if err == nil {
		return
	}
	var ec *exitErrCode
	if errors.As(err, &ec) {
		if ec.err != nil {
			fmt.Fprintln(os.Stderr, ec.err)
		}
		os.Exit(ec.code)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "petravm",
		Short:         "Assemble and run PetraVM programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(newRunCmd(), newAssembleCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		args       []string
		maxSteps   uint64
		oracleKind string
		witness    string
		traceOut   string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "run <file.pvasm>",
		Short: "Assemble and execute a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cliArgs []string) error {
			src, err := os.ReadFile(cliArgs[0])
			if err != nil {
				return exitErr(2, fmt.Errorf("reading %s: %w", cliArgs[0], err))
			}

			cfg := petravm.DefaultRunConfig().WithMaxSteps(maxSteps)
			for _, kv := range args {
				slot, value, err := parseArg(kv)
				if err != nil {
					return exitErr(2, err)
				}
				cfg = cfg.WithArg(slot, value)
			}

			switch oracleKind {
			case "", "zero":
				// DefaultRunConfig already supplies a ZeroOracle at Run time.
			case "witness-file":
				if witness == "" {
					return exitErr(2, errors.New("--oracle witness-file requires --witness-file PATH"))
				}
				oracle, err := petravm.LoadWitnessFileOracle(witness, 2)
				if err != nil {
					return exitErr(2, err)
				}
				cfg = cfg.WithOracle(oracle)
			default:
				return exitErr(2, fmt.Errorf("unknown --oracle %q (want zero or witness-file)", oracleKind))
			}

			res, runErr := petravm.Run(string(src), cfg)

			if traceOut != "" && res != nil {
				if err := writeTrace(traceOut, res.Trace); err != nil {
					return exitErr(2, err)
				}
			}

			printRunResult(res, runErr, asJSON)

			if runErr == nil {
				return nil
			}
			var vmErr *petravm.VMError
			if errors.As(runErr, &vmErr) {
				switch vmErr.Code {
				case petravm.ErrTrap:
					return exitErr(1, nil)
				case petravm.ErrStepBudget:
					return exitErr(3, nil)
				}
			}
			return exitErr(2, nil)
		},
	}

	cmd.Flags().StringArrayVar(&args, "arg", nil, "initial VROM argument as slot=value (repeatable)")
	cmd.Flags().Uint64Var(&maxSteps, "max-steps", 0, "step budget (0 = unbounded)")
	cmd.Flags().StringVar(&oracleKind, "oracle", "zero", "allocator oracle: zero or witness-file")
	cmd.Flags().StringVar(&witness, "witness-file", "", "path to a witness-file oracle JSON document")
	cmd.Flags().StringVar(&traceOut, "trace-out", "", "write the execution trace as JSON Lines to this path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON instead of plain text")

	return cmd
}

func newAssembleCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "assemble <file.pvasm>",
		Short: "Parse and lower a program without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cliArgs []string) error {
			src, err := os.ReadFile(cliArgs[0])
			if err != nil {
				return exitErr(2, fmt.Errorf("reading %s: %w", cliArgs[0], err))
			}
			res, err := petravm.Assemble(string(src))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return exitErr(2, nil)
			}
			printAssembleResult(res, asJSON)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON instead of plain text")
	return cmd
}

// exitErrCode lets RunE propagate a process exit code without Cobra
// printing its own usage banner for runtime (as opposed to flag-parsing)
// failures.
type exitErrCode struct {
	code int
	err  error
}

func (e *exitErrCode) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func exitErr(code int, err error) error {
	return &exitErrCode{code: code, err: err}
}

func parseArg(kv string) (uint32, uint32, error) {
	parts := strings.SplitN(kv, "=", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("--arg %q must be slot=value", kv)
	}
	slot, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("--arg %q: invalid slot: %w", kv, err)
	}
	value, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("--arg %q: invalid value: %w", kv, err)
	}
	return uint32(slot), uint32(value), nil
}

func writeTrace(path string, trace []petravm.TraceRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	for _, rec := range trace {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

func printRunResult(res *petravm.Result, runErr error, asJSON bool) {
	if res == nil {
		return
	}
	if asJSON {
		_ = json.NewEncoder(os.Stdout).Encode(struct {
			Halt          string `json:"halt"`
			TrapCode      uint8  `json:"trap_code,omitempty"`
			Steps         uint64 `json:"steps"`
			FinalPC       uint32 `json:"final_pc"`
			FinalFP       uint32 `json:"final_fp"`
			ProgramDigest string `json:"program_digest"`
			TraceDigest   string `json:"trace_digest"`
			Error         string `json:"error,omitempty"`
		}{
			Halt:          res.Halt.String(),
			TrapCode:      res.TrapCode,
			Steps:         res.Steps,
			FinalPC:       res.FinalPC,
			FinalFP:       res.FinalFP,
			ProgramDigest: fmt.Sprintf("%x", res.ProgramDigest),
			TraceDigest:   fmt.Sprintf("%x", res.TraceDigest),
			Error:         errString(runErr),
		})
		return
	}

	fmt.Printf("halt: %s\n", res.Halt)
	if res.Halt == petravm.HaltTrap {
		fmt.Printf("trap code: %d\n", res.TrapCode)
	}
	fmt.Printf("steps: %d\n", res.Steps)
	fmt.Printf("final pc: %d\n", res.FinalPC)
	fmt.Printf("final fp: %d\n", res.FinalFP)
	fmt.Printf("program digest: %x\n", res.ProgramDigest)
	fmt.Printf("trace digest: %x\n", res.TraceDigest)
	if runErr != nil {
		fmt.Printf("error: %v\n", runErr)
	}
}

func printAssembleResult(res *petravm.AssembleResult, asJSON bool) {
	if asJSON {
		_ = json.NewEncoder(os.Stdout).Encode(res)
		return
	}
	fmt.Printf("instructions: %d\n", res.InstructionCt)
	fmt.Printf("program digest: %x\n", res.ProgramDigest)
	for label, pc := range res.Labels {
		frame, ok := res.FrameSizes[label]
		if ok {
			fmt.Printf("  %s: pc=%d framesize=0x%x\n", label, pc, frame)
		} else {
			fmt.Printf("  %s: pc=%d\n", label, pc)
		}
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
