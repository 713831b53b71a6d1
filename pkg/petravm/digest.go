package petravm

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/petravm/petravm/internal/petravm/interp"
	"github.com/petravm/petravm/internal/petravm/isa"
)

// programDigest hashes an assembled instruction table with SHA-3, so
// two embedders running the same program can cheaply confirm they
// assembled identically without diffing the full PROM. This is a
// reproducibility fingerprint, not a cryptographic commitment consumed
// by any prover.
func programDigest(instrs []isa.Instruction) [32]byte {
	h := sha3.New256()
	var buf [4]byte
	put := func(v uint32) {
		binary.BigEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}
	for _, in := range instrs {
		put(uint32(in.Op))
		for _, op := range in.Operands {
			put(uint32(op.Kind))
			put(op.Slot)
			put(uint32(op.Offset))
			put(op.Imm)
		}
		if in.Hint {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// traceDigest hashes a completed execution trace with SHA-3.
func traceDigest(trace []interp.Record) [32]byte {
	h := sha3.New256()
	var buf [4]byte
	put := func(v uint32) {
		binary.BigEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}
	for _, r := range trace {
		put(uint32(r.PC))
		h.Write([]byte(r.Op))
		for _, a := range r.Reads {
			put(a.Slot)
			put(a.Value)
		}
		for _, a := range r.Writes {
			put(a.Slot)
			put(a.Value)
		}
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}
