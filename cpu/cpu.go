// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/msp430/isa"
)

const MEMORY_SIZE = 0x10000 // Bytes of address space.

// Cpu is the simulation context of an MSP430 core and its memory.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   [MEMORY_SIZE]byte // Byte addressed memory.
	Register isa.Registers     // Register file.

	Ticks int // Instructions retired.

	fault error // Fault that halted the CPU.
}

// NewCpu creates a CPU with an image loaded at address 0.
func NewCpu(image []byte) (cpu *Cpu, err error) {
	cpu = &Cpu{}
	err = cpu.Reset(image)
	if err != nil {
		cpu = nil
	}
	return
}

// Reset clears memory and registers, and loads the image at address 0.
func (cpu *Cpu) Reset(image []byte) (err error) {
	if len(image) > MEMORY_SIZE {
		err = fmt.Errorf("%w: %d bytes", ErrImageSize, len(image))
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: reset, %d byte image", len(image))
	}

	clear(cpu.Memory[:])
	copy(cpu.Memory[:], image)
	cpu.Register = isa.Registers{}
	cpu.Ticks = 0
	cpu.fault = nil

	return
}

// Fault returns the error that halted the CPU, if any.
func (cpu *Cpu) Fault() error {
	return cpu.fault
}

// ReadByte reads one byte.
func (cpu *Cpu) ReadByte(addr uint16) uint8 {
	return cpu.Memory[addr]
}

// ReadWord reads a little-endian word.
func (cpu *Cpu) ReadWord(addr uint16) uint16 {
	return uint16(cpu.Memory[addr]) | uint16(cpu.Memory[addr+1])<<8
}

// WriteByte writes one byte.
func (cpu *Cpu) WriteByte(addr uint16, value uint8) {
	cpu.Memory[addr] = value
}

// WriteWord writes a little-endian word.
func (cpu *Cpu) WriteWord(addr uint16, value uint16) {
	cpu.Memory[addr] = uint8(value)
	cpu.Memory[addr+1] = uint8(value >> 8)
}

// Flag returns the state of a status register flag.
func (cpu *Cpu) Flag(flag uint16) bool {
	return (cpu.Register[isa.REG_SR] & flag) != 0
}

// Tick executes one instruction through all pipeline stages.
func (cpu *Cpu) Tick() (err error) {
	if cpu.fault != nil {
		err = errors.Join(ErrHalted, cpu.fault)
		return
	}

	pc := cpu.Register[isa.REG_PC]
	fetched := Fetch(cpu, pc)

	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode{Pc: pc, Word: fetched.Word}, err)
			cpu.fault = err
		}
	}()

	if cpu.Verbose {
		text, _, derr := isa.Disassemble(fetched.Words(), pc)
		if derr != nil {
			text = derr.Error()
		}
		log.Printf("%04x: %04x %v", pc, uint16(fetched.Word), text)
	}

	decoded := Decode(fetched)
	sourced := LoadSource(decoded, cpu.Register, cpu)
	operands := LoadDestination(sourced, cpu.Register, cpu)
	executed, err := Execute(operands, cpu.Register)
	if err != nil {
		return
	}

	cpu.apply(Writeback(executed, cpu.Register))
	cpu.Ticks++

	if cpu.Verbose && executed.Status.Mask != 0 {
		log.Printf("      flags %v", executed.Status)
	}

	return
}

// apply commits the result of an instruction.
func (cpu *Cpu) apply(commit Commit) {
	cpu.Register = commit.Register
	for _, store := range commit.Stores {
		if store.Byte {
			cpu.WriteByte(store.Addr, uint8(store.Value))
		} else {
			cpu.WriteWord(store.Addr, store.Value)
		}
		if cpu.Verbose {
			log.Printf("      [%04x] <- %04x", store.Addr, store.Value)
		}
	}
}

// String returns the register file as text.
func (cpu *Cpu) String() string {
	var text strings.Builder
	for n, value := range cpu.Register {
		fmt.Fprintf(&text, "%-3v %04X", isa.Register(n), value)
		if n%4 == 3 {
			text.WriteString("\n")
		} else {
			text.WriteString("  ")
		}
	}
	return text.String()
}
