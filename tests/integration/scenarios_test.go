// Package integration exercises the six named scenarios and the eight
// testable properties through the public pkg/petravm API, end to end.
package integration

import (
	_ "embed"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petravm/petravm/pkg/petravm"
)

//go:embed testdata/collatz.pvasm
var collatzSrc string

//go:embed testdata/fibonacci.pvasm
var fibonacciSrc string

//go:embed testdata/div.pvasm
var divSrc string

//go:embed testdata/bezout.pvasm
var bezoutSrc string

//go:embed testdata/exception.pvasm
var exceptionSrc string

//go:embed testdata/opcodes-suite.pvasm
var opcodesSuiteSrc string

func lastWrite(trace []petravm.TraceRecord, slot uint32) uint32 {
	var v uint32
	for _, rec := range trace {
		for _, w := range rec.Writes {
			if w.Slot == slot {
				v = w.Value
			}
		}
	}
	return v
}

func TestScenarioCollatzReachesOne(t *testing.T) {
	res, err := petravm.Run(collatzSrc, petravm.DefaultRunConfig().WithArg(2, 7))
	require.NoError(t, err)
	require.Equal(t, petravm.HaltSuccess, res.Halt)
	require.EqualValues(t, 0, lastWrite(res.Trace, 3))
}

func TestScenarioFibonacciTen(t *testing.T) {
	res, err := petravm.Run(fibonacciSrc, petravm.DefaultRunConfig().WithArg(2, 10))
	require.NoError(t, err)
	require.Equal(t, petravm.HaltSuccess, res.Halt)
	require.EqualValues(t, 55, lastWrite(res.Trace, 4))
}

func TestScenarioDivSeventeenByFive(t *testing.T) {
	res, err := petravm.Run(divSrc, petravm.DefaultRunConfig().WithArg(8, 17).WithArg(12, 5))
	require.NoError(t, err)
	require.Equal(t, petravm.HaltSuccess, res.Halt)
	require.EqualValues(t, 3, lastWrite(res.Trace, 16))
	require.EqualValues(t, 2, lastWrite(res.Trace, 20))
}

func TestScenarioBezoutTwoFortyAndFortySix(t *testing.T) {
	res, err := petravm.Run(bezoutSrc, petravm.DefaultRunConfig().WithArg(8, 240).WithArg(12, 46))
	require.NoError(t, err)
	require.Equal(t, petravm.HaltSuccess, res.Halt)

	gcd := lastWrite(res.Trace, 16)
	x := lastWrite(res.Trace, 20)
	y := lastWrite(res.Trace, 24)
	require.EqualValues(t, 2, gcd)
	require.Equal(t, gcd, x*240+y*46)
}

func TestScenarioExceptionTrapsOnZeroDivisor(t *testing.T) {
	res, err := petravm.Run(exceptionSrc, petravm.DefaultRunConfig().WithArg(2, 10).WithArg(3, 0))
	require.Error(t, err)
	var vmErr *petravm.VMError
	require.True(t, errors.As(err, &vmErr))
	require.Equal(t, petravm.ErrTrap, vmErr.Code)
	require.Equal(t, petravm.HaltTrap, res.Halt)
	require.EqualValues(t, 3, res.TrapCode)
}

func TestScenarioOpcodesSuiteAllPass(t *testing.T) {
	res, err := petravm.Run(opcodesSuiteSrc, petravm.DefaultRunConfig())
	require.NoError(t, err)
	require.Equal(t, petravm.HaltSuccess, res.Halt)
	require.EqualValues(t, 0, lastWrite(res.Trace, 2))
}

// --- Testable properties ---

func TestPropertyVromWriteOnceConflictIsFatal(t *testing.T) {
	src := `
#[framesize(0x10)]
_start:
	LDI.W @4, #1
	LDI.W @4, #2
	RET
`
	_, err := petravm.Run(src, nil)
	require.Error(t, err)
	var vmErr *petravm.VMError
	require.True(t, errors.As(err, &vmErr))
	require.Equal(t, petravm.ErrExecution, vmErr.Code)
}

func TestPropertyPcAdvancesByGeneratorEachStep(t *testing.T) {
	src := `
#[framesize(0x10)]
_start:
	XOR @4, @2, @3
	RET
`
	res, err := petravm.Run(src, petravm.DefaultRunConfig().WithArg(2, 1).WithArg(3, 2))
	require.NoError(t, err)
	require.Len(t, res.Trace, 2)
	require.EqualValues(t, 1, res.Trace[0].PC) // PC_0 = G^0 = 1
	require.EqualValues(t, 2, res.Trace[1].PC) // PC_1 = PC_0 * G = 2
}

func TestPropertyCallReturnBalanceRestoresCallerFrame(t *testing.T) {
	src := `
#[framesize(0x10)]
_start:
	FP @5, #16
	CALLI callee, @5
	RET
#[framesize(0x8)]
callee:
	LDI.W @2, #42
	RET
`
	res, err := petravm.Run(src, nil)
	require.NoError(t, err)
	require.Equal(t, petravm.HaltSuccess, res.Halt)
	require.EqualValues(t, 0, res.FinalFP)
}

func TestPropertyXorAndB32AddAgreeOnAddition(t *testing.T) {
	src := `
#[framesize(0x10)]
_start:
	XOR @5, @2, @3
	B32_ADD @6, @2, @3
	XOR @4, @5, @6
	RET
`
	res, err := petravm.Run(src, petravm.DefaultRunConfig().WithArg(2, 123).WithArg(3, 456))
	require.NoError(t, err)
	require.EqualValues(t, 0, lastWrite(res.Trace, 4))
}

func TestPropertyB32MulIdentityElement(t *testing.T) {
	src := `
#[framesize(0x10)]
_start:
	LDI.W @5, #1
	B32_MUL @4, @5, @2
	RET
`
	res, err := petravm.Run(src, petravm.DefaultRunConfig().WithArg(2, 0xBEEF))
	require.NoError(t, err)
	require.EqualValues(t, 0xBEEF, lastWrite(res.Trace, 4))
}

func TestPropertyShiftAmountMasksToLowFiveBits(t *testing.T) {
	src := `
#[framesize(0x10)]
_start:
	LDI.W @4, #1
	LDI.W @5, #33
	SLL @6, @4, @5
	RET
`
	res, err := petravm.Run(src, nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, lastWrite(res.Trace, 6))
}

func TestPropertyMulWidensIntoTwoLimbs(t *testing.T) {
	src := `
#[framesize(0x10)]
_start:
	MULU @4, @2, @3
	RET
`
	res, err := petravm.Run(src, petravm.DefaultRunConfig().WithArg(2, 0xFFFFFFFF).WithArg(3, 2))
	require.NoError(t, err)
	require.EqualValues(t, 0xFFFFFFFE, lastWrite(res.Trace, 4))
	require.EqualValues(t, 1, lastWrite(res.Trace, 5))
}

func TestPropertyLabelResolvesToGeneratorPower(t *testing.T) {
	src := `
#[framesize(0x10)]
_start:
	J skip
	TRAP #1
skip:
	RET
`
	res, err := petravm.Assemble(src)
	require.NoError(t, err)
	require.Contains(t, res.Labels, "_start")
	require.Contains(t, res.Labels, "skip")
	require.EqualValues(t, res.Labels["_start"], 1)
}
