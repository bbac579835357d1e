// Package cpu implements the MSP430 processor as a six stage pipeline.
//
// Each instruction passes through the stages in order, and each stage is a
// pure function of the prior stage result:
//
//	0  Fetch            the instruction word and the two words after it
//	1  Decode           family, opcode, addressing modes and registers
//	2  LoadSource       source address and value, or the jump target
//	3  LoadDestination  destination address and value
//	4  Execute          ALU result, flags, stack and jump control
//	5  Writeback        the register file and memory stores to commit
//
// Only the Cpu applies a Commit, so a faulting instruction changes no
// state. Once faulted, the Cpu refuses to run until Reset.
package cpu
