package isa

import (
	"fmt"
	"strings"
)

// Instruction is one assembly instruction, or a label definition.
type Instruction struct {
	Family    Family
	Single    SingleOp  // FAMILY_SINGLE opcode
	Double    DoubleOp  // FAMILY_DOUBLE opcode
	Condition Condition // FAMILY_JUMP condition
	Byte      bool      // .B suffix
	Src       Operand   // Single operand, or double operand source
	Dst       Operand   // Double operand destination
	Label     string    // Jump target, or the label defined
}

// Global is a labelled block of static data placed after the bootstrap.
type Global struct {
	Label string
	Bytes []byte
}

// MakeSingle creates a single operand instruction.
func MakeSingle(op SingleOp, byteMode bool, src Operand) Instruction {
	return Instruction{Family: FAMILY_SINGLE, Single: op, Byte: byteMode, Src: src}
}

// MakeReti creates the RETI instruction.
func MakeReti() Instruction {
	return Instruction{Family: FAMILY_NONE, Single: OP_RETI}
}

// MakeJump creates a jump to a label.
func MakeJump(cc Condition, label string) Instruction {
	return Instruction{Family: FAMILY_JUMP, Condition: cc, Label: label}
}

// MakeDouble creates a double operand instruction.
func MakeDouble(op DoubleOp, byteMode bool, src, dst Operand) Instruction {
	return Instruction{Family: FAMILY_DOUBLE, Double: op, Byte: byteMode, Src: src, Dst: dst}
}

// MakeLabel defines a label at the current position.
func MakeLabel(label string) Instruction {
	return Instruction{Family: FAMILY_LABEL, Label: label}
}

// Normalize returns the instruction with a normalized source operand.
func (in Instruction) Normalize() Instruction {
	switch in.Family {
	case FAMILY_SINGLE, FAMILY_DOUBLE:
		in.Src = in.Src.Normalize()
	}
	return in
}

// Size is the encoded size of the instruction, in bytes.
func (in Instruction) Size() (size int) {
	switch in.Family {
	case FAMILY_LABEL:
		return 0
	case FAMILY_SINGLE:
		size = 2 + 2*in.Src.Normalize().Words()
	case FAMILY_DOUBLE:
		size = 2 + 2*in.Src.Normalize().Words() + 2*in.Dst.Words()
	default:
		size = 2
	}
	return
}

func suffix(byteMode bool) string {
	if byteMode {
		return ".B"
	}
	return ""
}

// String renders the instruction in assembler syntax.
func (in Instruction) String() string {
	switch in.Family {
	case FAMILY_LABEL:
		return in.Label + ":"
	case FAMILY_NONE:
		return in.Single.String()
	case FAMILY_JUMP:
		return fmt.Sprintf("%v %v", in.Condition, in.Label)
	case FAMILY_SINGLE:
		return fmt.Sprintf("%v%v %v", in.Single, suffix(in.Byte), in.Src)
	case FAMILY_DOUBLE:
		return fmt.Sprintf("%v%v %v,%v", in.Double, suffix(in.Byte), in.Src, in.Dst)
	}
	return strings.ToUpper(in.Family.String())
}
