// Package isa describes the MSP430 instruction set.
//
// # Registers
//
// Sixteen 16-bit registers. R0 is the program counter (PC), R1 the stack
// pointer (SP), R2 the status register (SR) and R3 the constant generator
// (CG). R4 through R15 are general purpose.
//
// # Status Register
//
//	bit 0  C  carry
//	bit 1  Z  zero
//	bit 2  N  negative
//	bit 8  V  overflow
//
// # Instruction Words
//
// Three instruction families share the 16-bit word, selected by the top
// bits:
//
//	000100 oooBAArrrr     single operand (o: opcode, B: byte, A: As)
//	001ccc dddddddddd     jump (c: condition, d: signed word displacement)
//	oooo ssss ABAA dddd   double operand (A: Ad, B: byte, AA: As)
//
// # Addressing Modes
//
// The source As field selects one of four modes, and the destination Ad
// field one of two:
//
//	As  Ad  syntax   mode
//	00  0   Rn       register
//	01  1   x(Rn)    indexed (x follows the instruction word)
//	01  1   &addr    absolute (Rn is SR)
//	10  -   @Rn      indirect
//	11  -   @Rn+     indirect auto-increment
//	11  -   #imm     immediate (Rn is PC)
//
// The constants 0, 1, 2, 4, 8 and -1 are produced by SR and CG without an
// extension word.
package isa
