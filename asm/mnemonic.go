package asm

import (
	"fmt"
	"strings"

	"github.com/ezrec/msp430/isa"
)

// singleMap maps single operand mnemonics.
var singleMap = map[string]isa.SingleOp{
	"RRC":  isa.OP_RRC,
	"SWPB": isa.OP_SWPB,
	"RRA":  isa.OP_RRA,
	"SXT":  isa.OP_SXT,
	"PUSH": isa.OP_PUSH,
	"CALL": isa.OP_CALL,
}

// doubleMap maps double operand mnemonics.
var doubleMap = map[string]isa.DoubleOp{
	"MOV":  isa.OP_MOV,
	"ADD":  isa.OP_ADD,
	"ADDC": isa.OP_ADDC,
	"SUBC": isa.OP_SUBC,
	"SUB":  isa.OP_SUB,
	"CMP":  isa.OP_CMP,
	"DADD": isa.OP_DADD,
	"BIT":  isa.OP_BIT,
	"BIC":  isa.OP_BIC,
	"BIS":  isa.OP_BIS,
	"XOR":  isa.OP_XOR,
	"AND":  isa.OP_AND,
}

// jumpMap maps jump mnemonics, including the aliases.
var jumpMap = map[string]isa.Condition{
	"JNE": isa.COND_NE,
	"JNZ": isa.COND_NE,
	"JEQ": isa.COND_EQ,
	"JZ":  isa.COND_EQ,
	"JNC": isa.COND_NC,
	"JLO": isa.COND_NC,
	"JC":  isa.COND_C,
	"JHS": isa.COND_C,
	"JN":  isa.COND_N,
	"JGE": isa.COND_GE,
	"JL":  isa.COND_L,
	"JMP": isa.COND_ALWAYS,
}

// emulated is an emulated mnemonic, rewritten as a double operand
// instruction. A nil src uses the destination as the source as well.
type emulated struct {
	op   isa.DoubleOp
	src  *isa.Operand
	dst  *isa.Operand
	args int
}

func operand(op isa.Operand) *isa.Operand {
	return &op
}

// emulatedMap maps the emulated mnemonics to their double operand forms.
var emulatedMap = map[string]emulated{
	"ADC":  {op: isa.OP_ADDC, src: operand(isa.Imm(0)), args: 1},
	"BR":   {op: isa.OP_MOV, dst: operand(isa.Reg(isa.REG_PC)), args: 1},
	"CLR":  {op: isa.OP_MOV, src: operand(isa.Imm(0)), args: 1},
	"CLRC": {op: isa.OP_BIC, src: operand(isa.Imm(isa.SR_C)), dst: operand(isa.Reg(isa.REG_SR))},
	"CLRN": {op: isa.OP_BIC, src: operand(isa.Imm(isa.SR_N)), dst: operand(isa.Reg(isa.REG_SR))},
	"CLRZ": {op: isa.OP_BIC, src: operand(isa.Imm(isa.SR_Z)), dst: operand(isa.Reg(isa.REG_SR))},
	"DEC":  {op: isa.OP_SUB, src: operand(isa.Imm(1)), args: 1},
	"DECD": {op: isa.OP_SUB, src: operand(isa.Imm(2)), args: 1},
	"INC":  {op: isa.OP_ADD, src: operand(isa.Imm(1)), args: 1},
	"INCD": {op: isa.OP_ADD, src: operand(isa.Imm(2)), args: 1},
	"INV":  {op: isa.OP_XOR, src: operand(isa.Imm(0xffff)), args: 1},
	"NOP":  {op: isa.OP_MOV, src: operand(isa.Imm(0)), dst: operand(isa.Reg(isa.REG_CG))},
	"POP":  {op: isa.OP_MOV, src: operand(isa.AutoInc(isa.REG_SP)), args: 1},
	"RET":  {op: isa.OP_MOV, src: operand(isa.AutoInc(isa.REG_SP)), dst: operand(isa.Reg(isa.REG_PC))},
	"RLA":  {op: isa.OP_ADD, args: 1},
	"RLC":  {op: isa.OP_ADDC, args: 1},
	"SBC":  {op: isa.OP_SUBC, src: operand(isa.Imm(0)), args: 1},
	"SETC": {op: isa.OP_BIS, src: operand(isa.Imm(isa.SR_C)), dst: operand(isa.Reg(isa.REG_SR))},
	"SETN": {op: isa.OP_BIS, src: operand(isa.Imm(isa.SR_N)), dst: operand(isa.Reg(isa.REG_SR))},
	"SETZ": {op: isa.OP_BIS, src: operand(isa.Imm(isa.SR_Z)), dst: operand(isa.Reg(isa.REG_SR))},
	"TST":  {op: isa.OP_CMP, src: operand(isa.Imm(0)), args: 1},
}

// parseInstruction parses a mnemonic and its operands.
func (asm *Assembler) parseInstruction(mnemonic string, args []string) (instrs []isa.Instruction, err error) {
	name, width, _ := strings.Cut(strings.ToUpper(mnemonic), ".")
	var byteMode bool
	switch width {
	case "", "W":
	case "B":
		byteMode = true
	default:
		err = fmt.Errorf("%w: %v", ErrOpcodeInvalid, mnemonic)
		return
	}

	argCount := func(count int) (err error) {
		if len(args) != count {
			err = fmt.Errorf("%w: %v expects %d", ErrOperandCount, name, count)
		}
		return
	}

	if cond, ok := jumpMap[name]; ok {
		err = argCount(1)
		if err != nil {
			return
		}
		if !reLabel.MatchString(args[0]) {
			err = fmt.Errorf("%w: %v", ErrOperandSyntax, args[0])
			return
		}
		instrs = append(instrs, isa.MakeJump(cond, args[0]))
		return
	}

	operands := make([]isa.Operand, len(args))
	for n, arg := range args {
		operands[n], err = asm.parseOperand(arg)
		if err != nil {
			return
		}
	}

	if op, ok := singleMap[name]; ok {
		err = argCount(1)
		if err != nil {
			return
		}
		switch op {
		case isa.OP_SWPB, isa.OP_SXT, isa.OP_CALL:
			// Word only.
			byteMode = false
		}
		instrs = append(instrs, isa.MakeSingle(op, byteMode, operands[0]))
		return
	}

	if op, ok := doubleMap[name]; ok {
		err = argCount(2)
		if err != nil {
			return
		}
		instrs = append(instrs, isa.MakeDouble(op, byteMode, operands[0], operands[1]))
		return
	}

	if name == "RETI" {
		err = argCount(0)
		if err != nil {
			return
		}
		instrs = append(instrs, isa.MakeReti())
		return
	}

	if em, ok := emulatedMap[name]; ok {
		err = argCount(em.args)
		if err != nil {
			return
		}
		var src, dst isa.Operand
		switch {
		case em.src != nil && em.dst != nil:
			src, dst = *em.src, *em.dst
		case em.src != nil:
			src, dst = *em.src, operands[0]
		case em.dst != nil:
			src, dst = operands[0], *em.dst
		default:
			src, dst = operands[0], operands[0]
		}
		instrs = append(instrs, isa.MakeDouble(em.op, byteMode, src, dst))
		return
	}

	err = fmt.Errorf("%w: %v", ErrOpcodeInvalid, mnemonic)
	return
}

// labelOrValue parses an immediate or absolute argument.
func (asm *Assembler) labelOrValue(text string) (value uint16, label string, err error) {
	value, err = asm.valueOf(text)
	if err == nil {
		return
	}
	if reLabel.MatchString(text) {
		label = text
		err = nil
	}
	return
}

// parseOperand parses one operand in TI syntax.
func (asm *Assembler) parseOperand(text string) (op isa.Operand, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		err = isa.ErrOperandMissing
		return
	}

	switch text[0] {
	case '#':
		var value uint16
		var label string
		value, label, err = asm.labelOrValue(text[1:])
		if err != nil {
			return
		}
		if label != "" {
			op = isa.ImmLabel(label)
		} else {
			op = isa.Imm(value)
		}
		return
	case '&':
		var value uint16
		var label string
		value, label, err = asm.labelOrValue(text[1:])
		if err != nil {
			return
		}
		if label != "" {
			op = isa.AbsLabel(label)
		} else {
			op = isa.Abs(value)
		}
		return
	case '@':
		name, autoinc := strings.CutSuffix(text[1:], "+")
		reg, ok := isa.ParseRegister(name)
		if !ok {
			err = fmt.Errorf("%w: %v", ErrRegisterInvalid, name)
			return
		}
		if autoinc {
			op = isa.AutoInc(reg)
		} else {
			op = isa.Ind(reg)
		}
		return
	}

	if reg, ok := isa.ParseRegister(text); ok {
		op = isa.Reg(reg)
		return
	}

	// offset(Rn)
	if offset, inner, found := strings.Cut(text, "("); found && strings.HasSuffix(inner, ")") {
		reg, ok := isa.ParseRegister(inner[:len(inner)-1])
		if !ok {
			err = fmt.Errorf("%w: %v", ErrRegisterInvalid, inner[:len(inner)-1])
			return
		}
		var value uint16
		value, err = asm.valueOf(offset)
		if err != nil {
			return
		}
		op = isa.Indexed(reg, int16(value))
		return
	}

	if reLabel.MatchString(text) {
		err = fmt.Errorf("%w: %v", isa.ErrSymbolicMode, text)
		return
	}

	err = fmt.Errorf("%w: %v", ErrOperandSyntax, text)
	return
}
