package isa

import (
	"fmt"
)

// Decode rebuilds the instruction at the head of words. Jump targets are
// rendered as absolute addresses relative to pc. The returned size is in
// bytes.
func Decode(words []uint16, pc uint16) (in Instruction, size int, err error) {
	if len(words) == 0 {
		err = ErrWordsShort
		return
	}

	w := Word(words[0])
	ext := words[1:]
	next := func() (word uint16) {
		if len(ext) == 0 {
			err = ErrWordsShort
			return
		}
		word, ext = ext[0], ext[1:]
		return
	}

	switch w.Family() {
	case FAMILY_NONE:
		in = MakeReti()
	case FAMILY_JUMP:
		cc, disp := w.JumpDecode()
		target := pc + 2 + uint16(disp)*2
		in = MakeJump(cc, fmt.Sprintf("0x%04x", target))
	case FAMILY_SINGLE:
		op, byteMode, as, reg := w.SingleDecode()
		if op > OP_RETI {
			err = fmt.Errorf("%w: 0x%04x", ErrIllegal, uint16(w))
			return
		}
		in = MakeSingle(op, byteMode, sourceOperand(as, reg, next))
	case FAMILY_DOUBLE:
		op, byteMode, as, src, ad, dst := w.DoubleDecode()
		srcOp := sourceOperand(as, src, next)
		var dstWord uint16
		if ad == AD_INDEXED {
			dstWord = next()
		}
		in = MakeDouble(op, byteMode, srcOp, DecodeDestination(ad, dst, dstWord))
	}

	if err != nil {
		return
	}

	size = 2 * (len(words) - len(ext))
	return
}

func sourceOperand(as uint16, reg Register, next func() uint16) Operand {
	var ext uint16
	if SourceUsesWord(as, reg) {
		ext = next()
	}
	return DecodeOperand(as, reg, ext)
}

// Disassemble renders the instruction at the head of words as text.
func Disassemble(words []uint16, pc uint16) (text string, size int, err error) {
	in, size, err := Decode(words, pc)
	if err != nil {
		return
	}

	text = in.String()
	return
}
