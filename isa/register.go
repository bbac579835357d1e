package isa

import (
	"strconv"
	"strings"
)

// Register identifies one of the sixteen CPU registers.
type Register uint8

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_PC  = Register(0)  // PC
	REG_SP  = Register(1)  // SP
	REG_SR  = Register(2)  // SR
	REG_CG  = Register(3)  // CG
	REG_R4  = Register(4)  // R4
	REG_R5  = Register(5)  // R5
	REG_R6  = Register(6)  // R6
	REG_R7  = Register(7)  // R7
	REG_R8  = Register(8)  // R8
	REG_R9  = Register(9)  // R9
	REG_R10 = Register(10) // R10
	REG_R11 = Register(11) // R11
	REG_R12 = Register(12) // R12
	REG_R13 = Register(13) // R13
	REG_R14 = Register(14) // R14
	REG_R15 = Register(15) // R15
)

const REGISTER_COUNT = 16

// Registers is a register file, indexed by Register.
type Registers [REGISTER_COUNT]uint16

// Bits returns the 4-bit register field.
func (r Register) Bits() uint16 {
	return uint16(r) & 0xf
}

// ParseRegister accepts `PC`, `SP`, `SR`, `CG` and `R0` through `R15`,
// in any case.
func ParseRegister(name string) (reg Register, ok bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	switch name {
	case "PC":
		return REG_PC, true
	case "SP":
		return REG_SP, true
	case "SR":
		return REG_SR, true
	case "CG":
		return REG_CG, true
	}

	digits, found := strings.CutPrefix(name, "R")
	if !found {
		return
	}

	n, err := strconv.ParseUint(digits, 10, 8)
	if err != nil || n >= REGISTER_COUNT {
		return
	}

	reg = Register(n)
	ok = true
	return
}
