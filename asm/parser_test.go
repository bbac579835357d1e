package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/msp430/isa"
)

const blinkSource = `
; blink the LEDs
.equ LEDS 0x8A04

counter:
	.word 0x0010
table: .byte 1, 2, 'A'
wide: .bits 0x11223344,24

main:
	mov #counter, r4
	mov.b #$(LEDS & 0xff), &LEDS
loop:	dec r5
	jnz loop
	call #func
	ret
func:
	push 2(r4)
	pop r5
	ret
`

func TestParse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	globals, instrs, err := asm.Parse(strings.NewReader(blinkSource))
	assert.NoError(err)

	assert.Equal([]isa.Global{
		{Label: "counter", Bytes: []byte{0x10, 0x00}},
		{Label: "table", Bytes: []byte{1, 2, 'A'}},
		{Label: "wide", Bytes: []byte{0x44, 0x33, 0x22}},
	}, globals)

	pop := isa.AutoInc(isa.REG_SP)
	assert.Equal([]isa.Instruction{
		isa.MakeLabel("main"),
		isa.MakeDouble(isa.OP_MOV, false, isa.ImmLabel("counter"), isa.Reg(isa.REG_R4)),
		isa.MakeDouble(isa.OP_MOV, true, isa.Imm(4), isa.Abs(0x8a04)),
		isa.MakeLabel("loop"),
		isa.MakeDouble(isa.OP_SUB, false, isa.Imm(1), isa.Reg(isa.REG_R5)),
		isa.MakeJump(isa.COND_NE, "loop"),
		isa.MakeSingle(isa.OP_CALL, false, isa.ImmLabel("func")),
		isa.MakeDouble(isa.OP_MOV, false, pop, isa.Reg(isa.REG_PC)),
		isa.MakeLabel("func"),
		isa.MakeSingle(isa.OP_PUSH, false, isa.Indexed(isa.REG_R4, 2)),
		isa.MakeDouble(isa.OP_MOV, false, pop, isa.Reg(isa.REG_R5)),
		isa.MakeDouble(isa.OP_MOV, false, pop, isa.Reg(isa.REG_PC)),
	}, instrs)
}

func TestParseEmulated(t *testing.T) {
	assert := assert.New(t)

	r6 := isa.Reg(isa.REG_R6)
	table := [](struct {
		line string
		in   isa.Instruction
	}){
		{"adc r6", isa.MakeDouble(isa.OP_ADDC, false, isa.Imm(0), r6)},
		{"br #0x1234", isa.MakeDouble(isa.OP_MOV, false, isa.Imm(0x1234), isa.Reg(isa.REG_PC))},
		{"clr.b r6", isa.MakeDouble(isa.OP_MOV, true, isa.Imm(0), r6)},
		{"clrc", isa.MakeDouble(isa.OP_BIC, false, isa.Imm(1), isa.Reg(isa.REG_SR))},
		{"decd r6", isa.MakeDouble(isa.OP_SUB, false, isa.Imm(2), r6)},
		{"inc r6", isa.MakeDouble(isa.OP_ADD, false, isa.Imm(1), r6)},
		{"incd r6", isa.MakeDouble(isa.OP_ADD, false, isa.Imm(2), r6)},
		{"inv r6", isa.MakeDouble(isa.OP_XOR, false, isa.Imm(0xffff), r6)},
		{"nop", isa.MakeDouble(isa.OP_MOV, false, isa.Imm(0), isa.Reg(isa.REG_CG))},
		{"rla r6", isa.MakeDouble(isa.OP_ADD, false, r6, r6)},
		{"rlc r6", isa.MakeDouble(isa.OP_ADDC, false, r6, r6)},
		{"sbc r6", isa.MakeDouble(isa.OP_SUBC, false, isa.Imm(0), r6)},
		{"setz", isa.MakeDouble(isa.OP_BIS, false, isa.Imm(2), isa.Reg(isa.REG_SR))},
		{"tst r6", isa.MakeDouble(isa.OP_CMP, false, isa.Imm(0), r6)},
		{"jz done", isa.MakeJump(isa.COND_EQ, "done")},
		{"jlo done", isa.MakeJump(isa.COND_NC, "done")},
		{"jhs done", isa.MakeJump(isa.COND_C, "done")},
		{"swpb.b r6", isa.MakeSingle(isa.OP_SWPB, false, r6)},
		{"reti", isa.MakeReti()},
		{"mov -2(sp), 0(r6)", isa.MakeDouble(isa.OP_MOV, false, isa.Indexed(isa.REG_SP, -2), isa.Indexed(isa.REG_R6, 0))},
		{"mov #'0', r6", isa.MakeDouble(isa.OP_MOV, false, isa.Imm('0'), r6)},
		{"mov #-1, r6", isa.MakeDouble(isa.OP_MOV, false, isa.Imm(0xffff), r6)},
		{"mov #~0x0f, r6", isa.MakeDouble(isa.OP_MOV, false, isa.Imm(0xfff0), r6)},
		{"mov #$(STACK_TOP - 2), sp", isa.MakeDouble(isa.OP_MOV, false, isa.Imm(0x7ffe), isa.Reg(isa.REG_SP))},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, instrs, err := asm.Parse(strings.NewReader(entry.line))
		if !assert.NoError(err, entry.line) {
			continue
		}
		assert.Equal([]isa.Instruction{entry.in}, instrs, entry.line)
	}
}

func TestParseMacro(t *testing.T) {
	assert := assert.New(t)

	source := `
.macro SETLEDS value
	mov #value, &LEDS
\@wait:	dec r4
	jnz \@wait
.endm
main:
	SETLEDS 0x8001
	SETLEDS 0x0180
`
	asm := &Assembler{}
	asm.Predefine("LEDS", "0x8a04")
	_, instrs, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)

	dec := isa.MakeDouble(isa.OP_SUB, false, isa.Imm(1), isa.Reg(isa.REG_R4))
	assert.Equal([]isa.Instruction{
		isa.MakeLabel("main"),
		isa.MakeDouble(isa.OP_MOV, false, isa.Imm(0x8001), isa.Abs(0x8a04)),
		isa.MakeLabel("SETLEDS_1_wait"),
		dec,
		isa.MakeJump(isa.COND_NE, "SETLEDS_1_wait"),
		isa.MakeDouble(isa.OP_MOV, false, isa.Imm(0x0180), isa.Abs(0x8a04)),
		isa.MakeLabel("SETLEDS_2_wait"),
		dec,
		isa.MakeJump(isa.COND_NE, "SETLEDS_2_wait"),
	}, instrs)

	// Equates from the macro arguments do not leak.
	_, ok := asm.Equate["value"]
	assert.False(ok)
}

func TestParseErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		lineNo int
		err    error
	}){
		{"mov r4", 1, ErrOperandCount},
		{"main:\n  mov data, r4", 2, isa.ErrSymbolicMode},
		{"frob r4", 1, ErrOpcodeInvalid},
		{"mov.l r4, r5", 1, ErrOpcodeInvalid},
		{".word 1", 1, ErrGlobalLabel},
		{"x: .bits 1,12", 1, ErrGlobalSyntax},
		{"x: .byte 256", 1, ErrValueInvalid},
		{".equ X", 1, ErrEquateSyntax},
		{".equ X 1\n.equ X 2", 2, ErrEquateDuplicate},
		{"mov #0x10000, r4", 1, ErrValueInvalid},
		{"mov @r99, r4", 1, ErrRegisterInvalid},
		{"mov 2(q7), r4", 1, ErrRegisterInvalid},
		{"mov #$(1/0), r4", 1, nil},
		{`mov #$("x"), r4`, 1, ErrExpressionResult},
		{"jmp 0x1234", 1, ErrOperandSyntax},
		{".macro A\n.macro B", 2, ErrMacroNesting},
		{".macro A\nnop", 2, ErrMacroLonely},
		{".endm", 1, ErrMacroLonelyEndm},
		{".macro A x\n.endm\nA", 3, ErrMacroSyntax},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, _, err := asm.Parse(strings.NewReader(entry.source))
		if !assert.Error(err, entry.source) {
			continue
		}
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.source)
		}
		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.source) {
			assert.Equal(entry.lineNo, syntax.LineNo, entry.source)
		}
	}
}

func TestAssemble(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	image, err := asm.Assemble(strings.NewReader(blinkSource))
	assert.NoError(err)

	// bootstrap, 8 bytes of globals, then code.
	assert.Equal([]uint16{0x4031, 0x8000, 0x3c04}, words(image[:6]))
	assert.Equal([]byte{0x10, 0x00, 1, 2, 'A', 0x44, 0x33, 0x22}, image[6:14])
	assert.Equal([]uint16{0x4034, 0x0006}, words(image[14:18]))

	_, err = asm.Assemble(strings.NewReader("main:\n  jmp nowhere\n"))
	assert.ErrorIs(err, ErrLabelMissing("nowhere"))
}
