package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/msp430/isa"
)

const (
	flagsAll   = isa.SR_C | isa.SR_Z | isa.SR_N | isa.SR_V
	flagsNone  = uint16(0)
	carrySet   = isa.SR_C
	carryClear = uint16(0)
)

func TestDoubleOperand(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		op     isa.DoubleOp
		b      bool
		src    uint16
		dst    uint16
		sr     uint16
		result uint16
		write  bool
		mask   uint16
		flags  uint16
	}){
		{"mov", isa.OP_MOV, false, 0x1234, 0xffff, 0, 0x1234, true, flagsNone, 0},
		{"mov_b", isa.OP_MOV, true, 0x1234, 0xffff, 0, 0x0034, true, flagsNone, 0},
		{"add_overflow", isa.OP_ADD, false, 1, 0x7fff, 0, 0x8000, true, flagsAll, isa.SR_N | isa.SR_V},
		{"add_carry", isa.OP_ADD, false, 1, 0xffff, 0, 0x0000, true, flagsAll, isa.SR_C | isa.SR_Z},
		{"add_b_carry", isa.OP_ADD, true, 1, 0x00ff, 0, 0x0000, true, flagsAll, isa.SR_C | isa.SR_Z},
		{"add_b_overflow", isa.OP_ADD, true, 1, 0x007f, 0, 0x0080, true, flagsAll, isa.SR_N | isa.SR_V},
		{"addc", isa.OP_ADDC, false, 0, 0xffff, carrySet, 0x0000, true, flagsAll, isa.SR_C | isa.SR_Z},
		{"addc_clear", isa.OP_ADDC, false, 2, 3, carryClear, 5, true, flagsAll, 0},
		{"sub_equal", isa.OP_SUB, false, 0, 0, 0, 0, true, flagsAll, isa.SR_C | isa.SR_Z},
		{"sub_borrow", isa.OP_SUB, false, 2, 1, 0, 0xffff, true, flagsAll, isa.SR_N},
		{"sub", isa.OP_SUB, false, 1, 2, 0, 1, true, flagsAll, isa.SR_C},
		{"sub_overflow", isa.OP_SUB, false, 1, 0x8000, 0, 0x7fff, true, flagsAll, isa.SR_C | isa.SR_V},
		{"subc_borrow_in", isa.OP_SUBC, false, 3, 5, carryClear, 1, true, flagsAll, isa.SR_C},
		{"subc", isa.OP_SUBC, false, 3, 5, carrySet, 2, true, flagsAll, isa.SR_C},
		{"cmp", isa.OP_CMP, false, 2, 1, 0, 0xffff, false, flagsAll, isa.SR_N},
		{"bit_zero", isa.OP_BIT, false, 0x0f, 0xf0, 0, 0, false, flagsAll, isa.SR_Z},
		{"and", isa.OP_AND, false, 0xff00, 0x8f0f, 0, 0x8f00, true, flagsAll, isa.SR_N | isa.SR_C},
		{"bic", isa.OP_BIC, false, 0x000f, 0x00ff, flagsAll, 0x00f0, true, flagsNone, 0},
		{"bis", isa.OP_BIS, false, 0x000f, 0x00f0, 0, 0x00ff, true, flagsNone, 0},
		{"bis_b", isa.OP_BIS, true, 0x0f0f, 0xf0f0, 0, 0x00ff, true, flagsNone, 0},
		{"xor", isa.OP_XOR, false, 0x8000, 0x8001, 0, 0x0001, true, flagsAll, isa.SR_C | isa.SR_V},
		{"xor_zero", isa.OP_XOR, false, 0x1234, 0x1234, 0, 0, true, flagsAll, isa.SR_Z},
	}

	for _, entry := range table {
		out, err := DoubleOperand(entry.op, entry.b, entry.src, entry.dst, entry.sr)
		if !assert.NoError(err, entry.name) {
			continue
		}
		assert.Equal(entry.result, out.Result, entry.name)
		assert.Equal(entry.write, out.Write, entry.name)
		assert.Equal(entry.mask, out.Status.Mask, entry.name)
		assert.Equal(entry.flags, out.Status.Apply(0), entry.name)
		assert.False(out.Jump, entry.name)
		assert.False(out.DecrementSp, entry.name)
	}

	_, err := DoubleOperand(isa.OP_DADD, false, 1, 1, 0)
	assert.ErrorIs(err, isa.ErrUnsupported)
}

func TestSingleOperand(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		op      isa.SingleOp
		b       bool
		operand uint16
		sr      uint16
		result  uint16
		mask    uint16
		flags   uint16
	}){
		{"rrc_out", isa.OP_RRC, false, 0x0001, carryClear, 0x0000, flagsAll, isa.SR_C | isa.SR_Z},
		{"rrc_in", isa.OP_RRC, false, 0x0002, carrySet, 0x8001, flagsAll, isa.SR_N},
		{"rrc_b", isa.OP_RRC, true, 0x1201, carrySet, 0x0080, flagsAll, isa.SR_N | isa.SR_C},
		{"swpb", isa.OP_SWPB, false, 0x1234, 0, 0x3412, flagsNone, 0},
		{"rra_sign", isa.OP_RRA, false, 0x8002, 0, 0xc001, flagsAll, isa.SR_N},
		{"rra_carry", isa.OP_RRA, false, 0x0003, 0, 0x0001, flagsAll, isa.SR_C},
		{"rra_b", isa.OP_RRA, true, 0x0081, 0, 0x00c0, flagsAll, isa.SR_N | isa.SR_C},
		{"sxt_neg", isa.OP_SXT, false, 0x1280, 0, 0xff80, flagsAll, isa.SR_N | isa.SR_C},
		{"sxt_pos", isa.OP_SXT, false, 0x127f, 0, 0x007f, flagsAll, isa.SR_C},
		{"sxt_zero", isa.OP_SXT, false, 0x1200, 0, 0x0000, flagsAll, isa.SR_Z},
		{"push", isa.OP_PUSH, false, 0xbeef, 0, 0xbeef, flagsNone, 0},
	}

	for _, entry := range table {
		out, err := SingleOperand(entry.op, entry.b, entry.operand, entry.sr, 0)
		if !assert.NoError(err, entry.name) {
			continue
		}
		assert.Equal(entry.result, out.Result, entry.name)
		assert.True(out.Write, entry.name)
		assert.Equal(entry.mask, out.Status.Mask, entry.name)
		assert.Equal(entry.flags, out.Status.Apply(0), entry.name)
		assert.Equal(entry.op == isa.OP_PUSH, out.DecrementSp, entry.name)
		assert.False(out.Jump, entry.name)
	}

	out, err := SingleOperand(isa.OP_CALL, false, 0x0040, 0, 0x0006)
	assert.NoError(err)
	assert.Equal(uint16(0x0006), out.Result)
	assert.True(out.DecrementSp)
	assert.True(out.Jump)
	assert.Equal(uint16(0x0040), out.NewPc)
	assert.Equal(uint16(0), out.Status.Mask)

	_, err = SingleOperand(isa.OP_RETI, false, 0, 0, 0)
	assert.ErrorIs(err, isa.ErrUnsupported)

	_, err = SingleOperand(isa.SingleOp(7), false, 0, 0, 0)
	assert.ErrorIs(err, isa.ErrIllegal)
}
