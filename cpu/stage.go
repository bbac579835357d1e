package cpu

import (
	"fmt"

	"github.com/ezrec/msp430/isa"
)

// Memory is read access to the address space.
type Memory interface {
	ReadWord(addr uint16) uint16
	ReadByte(addr uint16) uint8
}

func load(mem Memory, addr uint16, byteMode bool) uint16 {
	if byteMode {
		return uint16(mem.ReadByte(addr))
	}
	return mem.ReadWord(addr)
}

// Fetched is the stage 0 result.
type Fetched struct {
	Pc   uint16
	Word isa.Word
	Next [2]uint16 // The two words following Word.
}

// Words returns the instruction word and the words following it.
func (in Fetched) Words() []uint16 {
	return []uint16{uint16(in.Word), in.Next[0], in.Next[1]}
}

// Fetch reads the instruction at pc.
func Fetch(mem Memory, pc uint16) (out Fetched) {
	out.Pc = pc
	out.Word = isa.Word(mem.ReadWord(pc))
	out.Next[0] = mem.ReadWord(pc + 2)
	out.Next[1] = mem.ReadWord(pc + 4)
	return
}

// Decoded is the stage 1 result.
type Decoded struct {
	Fetched
	Family    isa.Family
	Single    isa.SingleOp
	Double    isa.DoubleOp
	Condition isa.Condition
	Byte      bool
	As        uint16
	Ad        uint16
	Src       isa.Register // Single operand register, or double operand source.
	Dst       isa.Register
	Disp      int16 // Jump displacement, in words.
}

// Decode splits the instruction word into its fields.
func Decode(in Fetched) (out Decoded) {
	out.Fetched = in

	w := in.Word
	out.Family = w.Family()
	switch out.Family {
	case isa.FAMILY_SINGLE, isa.FAMILY_NONE:
		out.Single, out.Byte, out.As, out.Src = w.SingleDecode()
		switch out.Single {
		case isa.OP_SWPB, isa.OP_SXT, isa.OP_CALL:
			// Word only.
			out.Byte = false
		}
	case isa.FAMILY_JUMP:
		out.Condition, out.Disp = w.JumpDecode()
	case isa.FAMILY_DOUBLE:
		out.Double, out.Byte, out.As, out.Src, out.Ad, out.Dst = w.DoubleDecode()
	}

	return
}

// String renders the decoded fields.
func (in Decoded) String() string {
	switch in.Family {
	case isa.FAMILY_JUMP:
		return fmt.Sprintf("%v %+d", in.Condition, in.Disp)
	case isa.FAMILY_DOUBLE:
		return fmt.Sprintf("%v b=%v as=%d %v ad=%d %v", in.Double, in.Byte, in.As, in.Src, in.Ad, in.Dst)
	}
	return fmt.Sprintf("%v b=%v as=%d %v", in.Single, in.Byte, in.As, in.Src)
}

// Sourced is the stage 2 result.
type Sourced struct {
	Decoded
	SrcAddr   uint16
	SrcMemory bool   // The source is in memory at SrcAddr.
	SrcValue  uint16 // Source operand value.
	SrcWord   bool   // The source consumed an extension word.
	Constant  bool   // The source is a constant or immediate.
	AutoInc   bool   // The source register is post-incremented.
	Target    uint16 // Jump target.
}

// LoadSource resolves the source operand, or the jump target.
func LoadSource(in Decoded, regs isa.Registers, mem Memory) (out Sourced) {
	out.Decoded = in

	switch in.Family {
	case isa.FAMILY_JUMP:
		out.Target = in.Pc + uint16(in.Disp)*2
		return
	case isa.FAMILY_NONE:
		return
	}

	constant := func(value uint16) {
		out.SrcValue = value
		out.Constant = true
	}
	address := func(addr uint16) {
		out.SrcAddr = addr
		out.SrcMemory = true
	}

	reg := in.Src
	switch in.As {
	case isa.AS_REGISTER:
		if reg == isa.REG_CG {
			constant(0)
		} else {
			out.SrcValue = regs[reg]
		}
	case isa.AS_INDEXED:
		switch reg {
		case isa.REG_CG:
			constant(1)
		case isa.REG_SR:
			out.SrcWord = true
			address(in.Next[0])
		default:
			out.SrcWord = true
			address(regs[reg] + in.Next[0])
		}
	case isa.AS_INDIRECT:
		switch reg {
		case isa.REG_CG:
			constant(2)
		case isa.REG_SR:
			constant(4)
		default:
			address(regs[reg])
		}
	case isa.AS_AUTOINC:
		switch reg {
		case isa.REG_CG:
			constant(0xffff)
		case isa.REG_SR:
			constant(8)
		case isa.REG_PC:
			out.SrcWord = true
			out.Constant = true
			address(in.Pc + 2)
		default:
			out.AutoInc = true
			address(regs[reg])
		}
	}

	if out.SrcMemory {
		out.SrcValue = load(mem, out.SrcAddr, in.Byte)
	}

	return
}

// Operands is the stage 3 result.
type Operands struct {
	Sourced
	DstAddr   uint16
	DstMemory bool   // The destination is in memory at DstAddr.
	DstValue  uint16 // Destination operand value.
	DstWord   bool   // The destination consumed an extension word.
}

// LoadDestination resolves the destination of a double operand instruction.
func LoadDestination(in Sourced, regs isa.Registers, mem Memory) (out Operands) {
	out.Sourced = in

	if in.Family != isa.FAMILY_DOUBLE {
		return
	}

	if in.Ad == isa.AD_REGISTER {
		out.DstValue = regs[in.Dst]
		return
	}

	word := in.Next[0]
	if in.SrcWord {
		word = in.Next[1]
	}

	out.DstWord = true
	out.DstMemory = true
	if in.Dst == isa.REG_SR {
		out.DstAddr = word
	} else {
		out.DstAddr = regs[in.Dst] + word
	}
	out.DstValue = load(mem, out.DstAddr, in.Byte)

	return
}

// Size is the instruction size in bytes.
func (in Operands) Size() uint16 {
	size := uint16(2)
	if in.SrcWord {
		size += 2
	}
	if in.DstWord {
		size += 2
	}
	return size
}

// Executed is the stage 4 result.
type Executed struct {
	Operands
	AluResult
}

// Execute runs the ALU, or evaluates the jump condition.
func Execute(in Operands, regs isa.Registers) (out Executed, err error) {
	out.Operands = in

	sr := regs[isa.REG_SR]
	switch in.Family {
	case isa.FAMILY_JUMP:
		out.Jump = in.Condition.Taken(sr)
		out.NewPc = in.Target
	case isa.FAMILY_SINGLE:
		// CALL saves PC+2 regardless of its size.
		out.AluResult, err = SingleOperand(in.Single, in.Byte, in.SrcValue, sr, in.Pc+2)
	case isa.FAMILY_DOUBLE:
		out.AluResult, err = DoubleOperand(in.Double, in.Byte, in.SrcValue, in.DstValue, sr)
	default:
		err = fmt.Errorf("%w: %v", isa.ErrUnsupported, in.Single)
	}

	return
}

// Store is a pending memory write.
type Store struct {
	Addr  uint16
	Value uint16
	Byte  bool
}

// Commit is the stage 5 result: the next register file, and the memory
// stores to apply in order.
type Commit struct {
	Register isa.Registers
	Stores   []Store
}

// Writeback computes the state changes of an executed instruction.
func Writeback(in Executed, regs isa.Registers) (out Commit) {
	out.Register = regs
	r := &out.Register

	r[isa.REG_SR] = in.Status.Apply(r[isa.REG_SR])

	if in.DecrementSp {
		r[isa.REG_SP] -= 2
	}

	if in.AutoInc {
		step := uint16(2)
		if in.Byte && in.Src != isa.REG_SP && in.Src != isa.REG_PC {
			step = 1
		}
		r[in.Src] += step
	}

	writeRegister := func(reg isa.Register) {
		if in.Byte {
			r[reg] = in.Result & 0xff
		} else {
			r[reg] = in.Result
		}
	}
	store := func(addr uint16, byteMode bool) {
		out.Stores = append(out.Stores, Store{Addr: addr, Value: in.Result, Byte: byteMode})
	}

	switch in.Family {
	case isa.FAMILY_SINGLE:
		if in.DecrementSp {
			store(r[isa.REG_SP], in.Byte)
		}
		if !in.Write || in.Constant {
			break
		}
		switch {
		case in.SrcMemory:
			store(in.SrcAddr, in.Byte)
		case in.Single == isa.OP_PUSH:
			// A pushed register keeps its value.
		default:
			writeRegister(in.Src)
		}
	case isa.FAMILY_DOUBLE:
		if !in.Write {
			break
		}
		if in.DstMemory {
			store(in.DstAddr, in.Byte)
		} else {
			writeRegister(in.Dst)
		}
	}

	// A result written to PC still advances by the instruction size.
	if in.Jump {
		r[isa.REG_PC] = in.NewPc + 2
	} else {
		r[isa.REG_PC] += in.Size()
	}

	return
}
