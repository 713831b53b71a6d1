package isa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKnownMnemonics(t *testing.T) {
	cases := []struct {
		mnemonic string
		want     Opcode
	}{
		{"XOR", XOR},
		{"LDI.W", LDI_W},
		{"MVV.W", MVV_W},
		{"MVV.L", MVV_L},
		{"MVI.H", MVI_H},
		{"ALLOCI", ALLOCI},
		{"TRAP", TRAP},
	}
	for _, tc := range cases {
		op, ok := Lookup(tc.mnemonic)
		require.True(t, ok, "expected %q to resolve", tc.mnemonic)
		require.Equal(t, tc.want, op)
	}
}

func TestLookupIsCaseSensitive(t *testing.T) {
	_, ok := Lookup("xor")
	require.False(t, ok)
}

func TestLookupUnknownMnemonic(t *testing.T) {
	_, ok := Lookup("NOPE")
	require.False(t, ok)
}

func TestStringRoundTripsThroughLookup(t *testing.T) {
	for op, sig := range Table {
		got, ok := Lookup(op.String())
		require.True(t, ok)
		require.Equal(t, op, got)
		require.Equal(t, sig.Name, op.String())
	}
}

func TestEveryTableEntryHasAName(t *testing.T) {
	for op, sig := range Table {
		require.NotEmpty(t, sig.Name, "opcode %d has an empty name", int(op))
	}
}

func TestAllocOpcodesRequireHint(t *testing.T) {
	for _, op := range []Opcode{ALLOCI, ALLOCV} {
		sig, ok := op.Signature()
		require.True(t, ok)
		require.Equal(t, HintRequired, sig.Hint)
	}
}

func TestControlFlowOpcodesForbidHint(t *testing.T) {
	for _, op := range []Opcode{J, JUMPI, JUMPV, CALLI, CALLV, TAILI, TAILV, BNZ, RET} {
		sig, ok := op.Signature()
		require.True(t, ok)
		require.Equal(t, HintForbidden, sig.Hint)
	}
}

func TestIsJumpTarget(t *testing.T) {
	for _, op := range []Opcode{JUMPI, CALLI, TAILI, BNZ} {
		require.True(t, op.IsJumpTarget(), "%s should be a jump target", op)
	}
	for _, op := range []Opcode{JUMPV, CALLV, TAILV, ADD, XOR} {
		require.False(t, op.IsJumpTarget(), "%s should not be a jump target", op)
	}
}

func TestIsTerminator(t *testing.T) {
	for _, op := range []Opcode{J, JUMPI, JUMPV, CALLI, CALLV, TAILI, TAILV, RET, TRAP} {
		require.True(t, op.IsTerminator(), "%s should be a terminator", op)
	}
	for _, op := range []Opcode{ADD, XOR, BNZ, LW, ALLOCI} {
		require.False(t, op.IsTerminator(), "%s should not be a terminator", op)
	}
}

func TestNumOperands(t *testing.T) {
	retSig, _ := RET.Signature()
	require.Equal(t, 0, retSig.NumOperands())

	addSig, _ := ADD.Signature()
	require.Equal(t, 3, addSig.NumOperands())

	jSig, _ := J.Signature()
	require.Equal(t, 1, jSig.NumOperands())
}

func TestInvalidOpcodeStringIsPlaceholder(t *testing.T) {
	require.Contains(t, opcodeInvalid.String(), "invalid")
}
