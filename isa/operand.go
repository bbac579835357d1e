package isa

import (
	"fmt"
)

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_REGISTER  = Mode(0) // register
	MODE_INDEXED   = Mode(1) // indexed
	MODE_ABSOLUTE  = Mode(2) // absolute
	MODE_INDIRECT  = Mode(3) // indirect
	MODE_AUTOINC   = Mode(4) // autoinc
	MODE_IMMEDIATE = Mode(5) // immediate
)

// As field values.
const (
	AS_REGISTER = uint16(0)
	AS_INDEXED  = uint16(1)
	AS_INDIRECT = uint16(2)
	AS_AUTOINC  = uint16(3)
)

// Ad field values.
const (
	AD_REGISTER = uint16(0)
	AD_INDEXED  = uint16(1)
)

// Operand is one instruction operand.
//
// Value holds the index offset, absolute address or immediate value. When
// Label is set on an absolute or immediate operand, Value is ignored and
// the label offset is used instead, once known.
type Operand struct {
	Mode     Mode
	Register Register
	Value    uint16
	Label    string
}

// Reg is register direct addressing.
func Reg(reg Register) Operand {
	return Operand{Mode: MODE_REGISTER, Register: reg}
}

// Indexed is register indexed addressing, `offset(Rn)`.
func Indexed(reg Register, offset int16) Operand {
	return Operand{Mode: MODE_INDEXED, Register: reg, Value: uint16(offset)}
}

// Abs is absolute addressing, `&addr`.
func Abs(addr uint16) Operand {
	return Operand{Mode: MODE_ABSOLUTE, Register: REG_SR, Value: addr}
}

// AbsLabel is absolute addressing of a label, `&label`.
func AbsLabel(label string) Operand {
	return Operand{Mode: MODE_ABSOLUTE, Register: REG_SR, Label: label}
}

// Ind is register indirect addressing, `@Rn`.
func Ind(reg Register) Operand {
	return Operand{Mode: MODE_INDIRECT, Register: reg}
}

// AutoInc is register indirect with post-increment, `@Rn+`.
func AutoInc(reg Register) Operand {
	return Operand{Mode: MODE_AUTOINC, Register: reg}
}

// Imm is an immediate value, `#value`.
func Imm(value uint16) Operand {
	return Operand{Mode: MODE_IMMEDIATE, Register: REG_PC, Value: value}
}

// ImmLabel is the offset of a label as an immediate, `#label`.
func ImmLabel(label string) Operand {
	return Operand{Mode: MODE_IMMEDIATE, Register: REG_PC, Label: label}
}

// constant returns the register and As bits of a constant generator
// encoding for an immediate, if one exists.
func (op Operand) constant() (reg Register, as uint16, ok bool) {
	if op.Mode != MODE_IMMEDIATE || op.Label != "" {
		return
	}

	ok = true
	switch op.Value {
	case 0:
		reg, as = REG_CG, AS_REGISTER
	case 1:
		reg, as = REG_CG, AS_INDEXED
	case 2:
		reg, as = REG_CG, AS_INDIRECT
	case 4:
		reg, as = REG_SR, AS_INDIRECT
	case 8:
		reg, as = REG_SR, AS_AUTOINC
	case 0xffff:
		reg, as = REG_CG, AS_AUTOINC
	default:
		ok = false
	}
	return
}

// Normalize rewrites a zero-offset indexed operand as indirect.
func (op Operand) Normalize() Operand {
	if op.Mode == MODE_INDEXED && op.Value == 0 && op.Label == "" {
		return Ind(op.Register)
	}
	return op
}

// SourceMode returns the As field for the operand as a source.
func (op Operand) SourceMode() (as uint16) {
	if _, as, ok := op.constant(); ok {
		return as
	}

	switch op.Mode {
	case MODE_INDEXED, MODE_ABSOLUTE:
		as = AS_INDEXED
	case MODE_INDIRECT:
		as = AS_INDIRECT
	case MODE_AUTOINC, MODE_IMMEDIATE:
		as = AS_AUTOINC
	default:
		as = AS_REGISTER
	}
	return
}

// DestinationMode returns the Ad field for the operand as a destination.
func (op Operand) DestinationMode() (ad uint16, err error) {
	switch op.Mode {
	case MODE_REGISTER:
		ad = AD_REGISTER
	case MODE_INDEXED, MODE_ABSOLUTE:
		ad = AD_INDEXED
	default:
		err = fmt.Errorf("%w: %v", ErrDestinationMode, op)
	}
	return
}

// RegisterBits returns the 4-bit register field.
func (op Operand) RegisterBits() uint16 {
	if reg, _, ok := op.constant(); ok {
		return reg.Bits()
	}

	switch op.Mode {
	case MODE_ABSOLUTE:
		return REG_SR.Bits()
	case MODE_IMMEDIATE:
		return REG_PC.Bits()
	}

	return op.Register.Bits()
}

// Extension returns the trailing word of the operand, if it has one.
// When label is not empty, word is a placeholder for the label offset.
func (op Operand) Extension() (word uint16, label string, ok bool) {
	if _, _, constant := op.constant(); constant {
		return
	}

	switch op.Mode {
	case MODE_INDEXED:
		word, ok = op.Value, true
	case MODE_ABSOLUTE, MODE_IMMEDIATE:
		if op.Label != "" {
			label, ok = op.Label, true
		} else {
			word, ok = op.Value, true
		}
	}
	return
}

// Words returns the count of trailing words.
func (op Operand) Words() int {
	if _, _, ok := op.Extension(); ok {
		return 1
	}
	return 0
}

// SourceUsesWord reports whether a source As field and register consume
// an extension word.
func SourceUsesWord(as uint16, reg Register) bool {
	switch as & 3 {
	case AS_INDEXED:
		return reg != REG_CG
	case AS_AUTOINC:
		return reg == REG_PC
	}
	return false
}

// DecodeOperand rebuilds a source operand from its As field, register
// and extension word.
func DecodeOperand(as uint16, reg Register, ext uint16) (op Operand) {
	switch as & 3 {
	case AS_REGISTER:
		if reg == REG_CG {
			return Imm(0)
		}
		return Reg(reg)
	case AS_INDEXED:
		switch reg {
		case REG_CG:
			return Imm(1)
		case REG_SR:
			return Abs(ext)
		}
		return Indexed(reg, int16(ext))
	case AS_INDIRECT:
		switch reg {
		case REG_CG:
			return Imm(2)
		case REG_SR:
			return Imm(4)
		}
		return Ind(reg)
	}

	switch reg {
	case REG_CG:
		return Imm(0xffff)
	case REG_SR:
		return Imm(8)
	case REG_PC:
		return Imm(ext)
	}
	return AutoInc(reg)
}

// DecodeDestination rebuilds a destination operand from its Ad field,
// register and extension word.
func DecodeDestination(ad uint16, reg Register, ext uint16) (op Operand) {
	if (ad & 1) == AD_REGISTER {
		return Reg(reg)
	}
	if reg == REG_SR {
		return Abs(ext)
	}
	return Indexed(reg, int16(ext))
}

// String renders the operand in assembler syntax.
func (op Operand) String() string {
	switch op.Mode {
	case MODE_INDEXED:
		return fmt.Sprintf("%d(%v)", int16(op.Value), op.Register)
	case MODE_ABSOLUTE:
		if op.Label != "" {
			return "&" + op.Label
		}
		return fmt.Sprintf("&0x%04x", op.Value)
	case MODE_INDIRECT:
		return fmt.Sprintf("@%v", op.Register)
	case MODE_AUTOINC:
		return fmt.Sprintf("@%v+", op.Register)
	case MODE_IMMEDIATE:
		if op.Label != "" {
			return "#" + op.Label
		}
		if op.Value < 10 {
			return fmt.Sprintf("#%d", op.Value)
		}
		return fmt.Sprintf("#0x%04x", op.Value)
	}
	return op.Register.String()
}
