package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/msp430/isa"
)

func FuzzDecode(f *testing.F) {
	for _, word := range []uint16{0x4031, 0x40b2, 0x4f3e, 0x12b0, 0x1204, 0x1300, 0x1384, 0x3c00, 0x2bff, 0xa405, 0x5354} {
		f.Add(word, uint16(0x1234), uint16(0x0002), uint16(0))
		f.Add(word, uint16(0xfffe), uint16(0x8000), uint16(isa.SR_C|isa.SR_N))
	}

	f.Fuzz(func(t *testing.T, word uint16, ext1 uint16, ext2 uint16, sr uint16) {
		assert := assert.New(t)

		cpu, err := NewCpu(program(0x4303, word, ext1, ext2))
		if !assert.NoError(err) {
			return
		}

		cpu.Register[isa.REG_PC] = 2
		cpu.Register[isa.REG_SP] = 0x4000
		cpu.Register[isa.REG_SR] = sr
		for n := isa.REG_R4; n <= isa.REG_R15; n++ {
			cpu.Register[n] = 0x2000 + uint16(n)*0x10
		}

		before := *cpu
		err = cpu.Tick()

		text := fmt.Sprintf("%04x %04x %04x sr=%04x\n%v", word, ext1, ext2, sr, &before)

		operands := LoadDestination(LoadSource(Decode(Fetch(&before, 2)), before.Register, &before), before.Register, &before)

		if err != nil {
			assert.ErrorIs(err, ErrOpcode{}, text)
			assert.True(errors.Is(err, isa.ErrUnsupported) || errors.Is(err, isa.ErrIllegal), text)
			assert.Equal(before.Register, cpu.Register, text)
			assert.Equal(before.Memory, cpu.Memory, text)
			assert.Equal(0, cpu.Ticks, text)
			return
		}

		assert.Equal(1, cpu.Ticks, text)

		// The pipeline agrees with the disassembler on instruction size.
		_, size, err := isa.Disassemble([]uint16{word, ext1, ext2}, 2)
		if assert.NoError(err, text) {
			assert.Equal(size, int(operands.Size()), text)
		}

		switch operands.Family {
		case isa.FAMILY_JUMP:
			pc := uint16(4)
			if operands.Condition.Taken(sr) {
				pc = 2 + uint16(operands.Disp)*2 + 2
			}
			assert.Equal(pc, cpu.Register[isa.REG_PC], text)
			assert.Equal(before.Register, withPc(cpu.Register, 2), text)
		case isa.FAMILY_DOUBLE:
			if operands.Dst == isa.REG_PC && operands.Ad == isa.AD_REGISTER && operands.Double.Writes() {
				// Branch.
				break
			}
			assert.Equal(2+operands.Size(), cpu.Register[isa.REG_PC], text)
		}
	})
}

func withPc(regs isa.Registers, pc uint16) isa.Registers {
	regs[isa.REG_PC] = pc
	return regs
}
