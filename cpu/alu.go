package cpu

import (
	"fmt"

	"github.com/ezrec/msp430/isa"
)

// AluResult is the outcome of the execute stage.
type AluResult struct {
	Result      uint16           // Value to write back.
	Status      isa.StatusUpdate // Flag changes.
	Write       bool             // Result is written to the operand.
	DecrementSp bool             // SP is decremented, and Result stored at the new SP.
	Jump        bool             // Control transfers to NewPc.
	NewPc       uint16
}

// width is the operand size of an instruction.
type width struct {
	mask uint16
	sign uint16
}

var (
	widthWord = width{mask: 0xffff, sign: 0x8000}
	widthByte = width{mask: 0x00ff, sign: 0x0080}
)

func widthOf(byteMode bool) width {
	if byteMode {
		return widthByte
	}
	return widthWord
}

func (w width) zn(r uint16) isa.StatusUpdate {
	return isa.StatusUpdate{}.
		Set(isa.SR_Z, r == 0).
		Set(isa.SR_N, (r&w.sign) != 0)
}

func carryIn(sr uint16) uint16 {
	return sr & isa.SR_C
}

// add is dst + src + cin, with all four flags.
func (w width) add(src, dst, cin uint16) (out AluResult) {
	src &= w.mask
	dst &= w.mask
	sum := uint32(src) + uint32(dst) + uint32(cin)
	r := uint16(sum) & w.mask

	out.Result = r
	out.Write = true
	out.Status = w.zn(r).
		Set(isa.SR_C, sum > uint32(w.mask)).
		Set(isa.SR_V, ((src^r)&(dst^r)&w.sign) != 0)
	return
}

// sub is dst - src - bin, with carry set when no borrow occurs.
func (w width) sub(src, dst, bin uint16) (out AluResult) {
	src &= w.mask
	dst &= w.mask
	diff := int32(dst) - int32(src) - int32(bin)
	r := uint16(diff) & w.mask

	out.Result = r
	out.Write = true
	out.Status = w.zn(r).
		Set(isa.SR_C, diff >= 0).
		Set(isa.SR_V, ((dst^src)&(dst^r)&w.sign) != 0)
	return
}

// DoubleOperand computes a double operand instruction.
func DoubleOperand(op isa.DoubleOp, byteMode bool, src, dst uint16, sr uint16) (out AluResult, err error) {
	w := widthOf(byteMode)

	switch op {
	case isa.OP_MOV:
		out.Result = src & w.mask
		out.Write = true
	case isa.OP_ADD:
		out = w.add(src, dst, 0)
	case isa.OP_ADDC:
		out = w.add(src, dst, carryIn(sr))
	case isa.OP_SUBC:
		out = w.sub(src, dst, 1-carryIn(sr))
	case isa.OP_SUB, isa.OP_CMP:
		out = w.sub(src, dst, 0)
	case isa.OP_BIT, isa.OP_AND:
		r := src & dst & w.mask
		out.Result = r
		out.Write = true
		out.Status = w.zn(r).
			Set(isa.SR_C, r != 0).
			Set(isa.SR_V, false)
	case isa.OP_BIC:
		out.Result = ^src & dst & w.mask
		out.Write = true
	case isa.OP_BIS:
		out.Result = (src | dst) & w.mask
		out.Write = true
	case isa.OP_XOR:
		r := (src ^ dst) & w.mask
		out.Result = r
		out.Write = true
		out.Status = w.zn(r).
			Set(isa.SR_C, r != 0).
			Set(isa.SR_V, (src&dst&w.sign) != 0)
	case isa.OP_DADD:
		err = fmt.Errorf("%w: %v", isa.ErrUnsupported, op)
	default:
		err = fmt.Errorf("%w: %v", isa.ErrIllegal, op)
	}

	if !op.Writes() {
		out.Write = false
	}

	return
}

// SingleOperand computes a single operand instruction. ret is the return
// address pushed by CALL.
func SingleOperand(op isa.SingleOp, byteMode bool, operand uint16, sr uint16, ret uint16) (out AluResult, err error) {
	w := widthOf(byteMode)
	operand &= w.mask

	switch op {
	case isa.OP_RRC:
		r := operand >> 1
		if carryIn(sr) != 0 {
			r |= w.sign
		}
		out.Result = r
		out.Write = true
		out.Status = w.zn(r).
			Set(isa.SR_C, (operand&1) != 0).
			Set(isa.SR_V, false)
	case isa.OP_SWPB:
		out.Result = (operand << 8) | (operand >> 8)
		out.Write = true
	case isa.OP_RRA:
		r := (operand >> 1) | (operand & w.sign)
		out.Result = r
		out.Write = true
		out.Status = w.zn(r).
			Set(isa.SR_C, (operand&1) != 0).
			Set(isa.SR_V, false)
	case isa.OP_SXT:
		r := operand & 0xff
		if (r & 0x80) != 0 {
			r |= 0xff00
		}
		out.Result = r
		out.Write = true
		out.Status = widthWord.zn(r).
			Set(isa.SR_C, r != 0).
			Set(isa.SR_V, false)
	case isa.OP_PUSH:
		out.Result = operand
		out.Write = true
		out.DecrementSp = true
	case isa.OP_CALL:
		out.Result = ret
		out.Write = true
		out.DecrementSp = true
		out.Jump = true
		out.NewPc = operand
	case isa.OP_RETI:
		err = fmt.Errorf("%w: %v", isa.ErrUnsupported, op)
	default:
		err = fmt.Errorf("%w: %v", isa.ErrIllegal, op)
	}

	return
}
