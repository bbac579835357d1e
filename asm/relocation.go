package asm

import (
	"encoding/binary"

	"github.com/ezrec/msp430/isa"
)

// Patch is the kind of relocation.
type Patch int

const (
	PATCH_WORD  = Patch(iota) // Full 16-bit little-endian label offset.
	PATCH_PCREL                // 10-bit word displacement in a jump.
)

// Relocation records an image location waiting for a label offset.
type Relocation struct {
	Offset int
	Label  string
	Patch  Patch
}

// Apply patches the image with the resolved label.
func (rel Relocation) Apply(image []byte, labels map[string]int) (err error) {
	target, ok := labels[rel.Label]
	if !ok {
		err = ErrLabelMissing(rel.Label)
		return
	}

	switch rel.Patch {
	case PATCH_WORD:
		binary.LittleEndian.PutUint16(image[rel.Offset:], uint16(target))
	case PATCH_PCREL:
		var bits uint16
		bits, err = rel.displacement(target)
		if err != nil {
			return
		}
		image[rel.Offset] = byte(bits)
		image[rel.Offset+1] |= byte(bits >> 8)
	}

	return
}

func (rel Relocation) displacement(target int) (bits uint16, err error) {
	diff := target - rel.Offset
	if diff%2 != 0 {
		err = ErrDisplacement{Label: rel.Label, Offset: rel.Offset, Bytes: diff, Err: ErrDisplacementOdd}
		return
	}

	words := diff / 2
	if words < isa.JUMP_DISP_MIN || words > isa.JUMP_DISP_MAX {
		err = ErrDisplacement{Label: rel.Label, Offset: rel.Offset, Bytes: diff, Err: ErrDisplacementRange}
		return
	}

	bits = uint16(words) & isa.JUMP_DISP_MASK
	return
}
