package isa

// Family is the instruction family.
type Family int

//go:generate go tool stringer -linecomment -type=Family
const (
	FAMILY_SINGLE = Family(0) // single
	FAMILY_NONE   = Family(1) // none
	FAMILY_JUMP   = Family(2) // jump
	FAMILY_DOUBLE = Family(3) // double
	FAMILY_LABEL  = Family(4) // label
)

// SingleOp is a single operand opcode.
type SingleOp uint16

//go:generate go tool stringer -linecomment -type=SingleOp
const (
	OP_RRC  = SingleOp(0) // RRC
	OP_SWPB = SingleOp(1) // SWPB
	OP_RRA  = SingleOp(2) // RRA
	OP_SXT  = SingleOp(3) // SXT
	OP_PUSH = SingleOp(4) // PUSH
	OP_CALL = SingleOp(5) // CALL
	OP_RETI = SingleOp(6) // RETI
)

// DoubleOp is a double operand opcode.
type DoubleOp uint16

//go:generate go tool stringer -linecomment -type=DoubleOp
const (
	OP_MOV  = DoubleOp(0x4) // MOV
	OP_ADD  = DoubleOp(0x5) // ADD
	OP_ADDC = DoubleOp(0x6) // ADDC
	OP_SUBC = DoubleOp(0x7) // SUBC
	OP_SUB  = DoubleOp(0x8) // SUB
	OP_CMP  = DoubleOp(0x9) // CMP
	OP_DADD = DoubleOp(0xa) // DADD
	OP_BIT  = DoubleOp(0xb) // BIT
	OP_BIC  = DoubleOp(0xc) // BIC
	OP_BIS  = DoubleOp(0xd) // BIS
	OP_XOR  = DoubleOp(0xe) // XOR
	OP_AND  = DoubleOp(0xf) // AND
)

// Writes returns false for the compare-only opcodes.
func (op DoubleOp) Writes() bool {
	return op != OP_CMP && op != OP_BIT
}

// Condition is a jump condition code.
type Condition uint16

//go:generate go tool stringer -linecomment -type=Condition
const (
	COND_NE     = Condition(0) // JNE
	COND_EQ     = Condition(1) // JEQ
	COND_NC     = Condition(2) // JNC
	COND_C      = Condition(3) // JC
	COND_N      = Condition(4) // JN
	COND_GE     = Condition(5) // JGE
	COND_L      = Condition(6) // JL
	COND_ALWAYS = Condition(7) // JMP
)

// Taken evaluates the condition against a status register value.
func (cc Condition) Taken(sr uint16) bool {
	c := (sr & SR_C) != 0
	z := (sr & SR_Z) != 0
	n := (sr & SR_N) != 0
	v := (sr & SR_V) != 0

	switch cc {
	case COND_NE:
		return !z
	case COND_EQ:
		return z
	case COND_NC:
		return !c
	case COND_C:
		return c
	case COND_N:
		return n
	case COND_GE:
		return n == v
	case COND_L:
		return n != v
	}

	return true
}

const (
	SINGLE_BASE = uint16(0x1000)
	JUMP_BASE   = uint16(0x2000)

	JUMP_DISP_MASK = uint16(0x03ff)
	JUMP_DISP_SIGN = uint16(0x0200)

	JUMP_DISP_MIN = -512
	JUMP_DISP_MAX = 511
)

// Word is a single instruction word.
type Word uint16

func boolBit(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// MakeSingleWord packs a single operand instruction word.
func MakeSingleWord(op SingleOp, byteMode bool, as uint16, reg Register) Word {
	return Word(SINGLE_BASE | (uint16(op&7) << 7) | (boolBit(byteMode) << 6) | ((as & 3) << 4) | reg.Bits())
}

// MakeJumpWord packs a jump instruction word with a word displacement.
func MakeJumpWord(cc Condition, disp int16) Word {
	return Word(JUMP_BASE | (uint16(cc&7) << 10) | (uint16(disp) & JUMP_DISP_MASK))
}

// MakeDoubleWord packs a double operand instruction word.
func MakeDoubleWord(op DoubleOp, byteMode bool, as uint16, src Register, ad uint16, dst Register) Word {
	return Word((uint16(op&0xf) << 12) | (src.Bits() << 8) | ((ad & 1) << 7) | (boolBit(byteMode) << 6) | ((as & 3) << 4) | dst.Bits())
}

// Family classifies the word by its top bits.
func (w Word) Family() Family {
	switch {
	case (w >> 13) == 0:
		if w.singleOp() == OP_RETI {
			return FAMILY_NONE
		}
		return FAMILY_SINGLE
	case (w >> 14) == 0:
		return FAMILY_JUMP
	}
	return FAMILY_DOUBLE
}

func (w Word) singleOp() SingleOp {
	return SingleOp((w >> 7) & 7)
}

// Byte returns the B/W bit.
func (w Word) Byte() bool {
	return ((w >> 6) & 1) != 0
}

// As returns the source addressing mode bits.
func (w Word) As() uint16 {
	return uint16(w>>4) & 3
}

// Ad returns the destination addressing mode bit.
func (w Word) Ad() uint16 {
	return uint16(w>>7) & 1
}

// SingleDecode decodes a single operand word.
func (w Word) SingleDecode() (op SingleOp, byteMode bool, as uint16, reg Register) {
	op = w.singleOp()
	byteMode = w.Byte()
	as = w.As()
	reg = Register(w & 0xf)
	return
}

// JumpDecode decodes a jump word into its condition and signed word
// displacement.
func (w Word) JumpDecode() (cc Condition, disp int16) {
	cc = Condition((w >> 10) & 7)
	bits := uint16(w) & JUMP_DISP_MASK
	if (bits & JUMP_DISP_SIGN) != 0 {
		bits |= ^JUMP_DISP_MASK
	}
	disp = int16(bits)
	return
}

// DoubleDecode decodes a double operand word.
func (w Word) DoubleDecode() (op DoubleOp, byteMode bool, as uint16, src Register, ad uint16, dst Register) {
	op = DoubleOp((w >> 12) & 0xf)
	byteMode = w.Byte()
	as = w.As()
	src = Register((w >> 8) & 0xf)
	ad = w.Ad()
	dst = Register(w & 0xf)
	return
}
