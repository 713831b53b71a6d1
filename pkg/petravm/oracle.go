package petravm

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/petravm/petravm/internal/petravm/memory"
)

// AllocatorOracle supplies VROM's two sources of non-determinism: fresh
// allocation addresses and first-read values for unwritten slots.
type AllocatorOracle = memory.AllocatorOracle

// NewZeroOracle returns the default oracle: power-of-two bump/slack
// address allocation, every unwritten slot reads as zero.
func NewZeroOracle(reserved uint32) AllocatorOracle {
	return memory.NewZeroOracle(reserved)
}

// WitnessFileOracle replays a fixed sequence of allocator addresses and
// a fixed map of slot values from a JSON document, falling back to
// ZeroOracle behaviour for anything the document doesn't cover.
type WitnessFileOracle struct {
	allocSeq []uint32
	allocIdx int
	values   map[uint32]uint32
	fallback AllocatorOracle
}

type witnessFileDoc struct {
	Alloc  []uint32          `json:"alloc"`
	Values map[string]uint32 `json:"values"`
}

// LoadWitnessFileOracle reads path as a {"alloc":[...],"values":{...}}
// JSON document. Keys under "values" are decimal VROM slot indices.
func LoadWitnessFileOracle(path string, reserved uint32) (*WitnessFileOracle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapErr(ErrInvalidConfig, "reading witness file", err)
	}
	var doc witnessFileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, wrapErr(ErrInvalidConfig, "parsing witness file", err)
	}
	values := make(map[uint32]uint32, len(doc.Values))
	for k, v := range doc.Values {
		slot, err := strconv.ParseUint(k, 10, 32)
		if err != nil {
			return nil, wrapErr(ErrInvalidConfig, fmt.Sprintf("witness file: invalid slot key %q", k), err)
		}
		values[uint32(slot)] = v
	}
	return &WitnessFileOracle{
		allocSeq: doc.Alloc,
		values:   values,
		fallback: memory.NewZeroOracle(reserved),
	}, nil
}

// Alloc returns the next address from the recorded allocation sequence,
// or falls back to the zero allocator once the sequence is exhausted.
func (o *WitnessFileOracle) Alloc(size uint32) uint32 {
	if o.allocIdx < len(o.allocSeq) {
		addr := o.allocSeq[o.allocIdx]
		o.allocIdx++
		return addr
	}
	return o.fallback.Alloc(size)
}

// Value returns the recorded value for slot, or 0 via the fallback
// oracle if the witness file doesn't cover it.
func (o *WitnessFileOracle) Value(slot uint32) uint32 {
	if v, ok := o.values[slot]; ok {
		return v
	}
	return o.fallback.Value(slot)
}
