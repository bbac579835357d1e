// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/msp430/asm"
	"github.com/ezrec/msp430/cpu"
	"github.com/ezrec/msp430/internal"
	"github.com/ezrec/msp430/io"
	"github.com/ezrec/msp430/isa"
)

var _emulator_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%#x", cpu.MEMORY_SIZE),
}

// Emulator state. CPU, memory image and peripherals.
type Emulator struct {
	Verbose          bool // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	*io.Peripherals       // Devices mapped into the CPU memory.

	Image []byte // Image loaded at reset.
}

// NewEmulator creates an emulator running the image.
func NewEmulator(image []byte) (emu *Emulator, err error) {
	emu = &Emulator{
		Image: slices.Clone(image),
	}

	emu.Cpu, err = cpu.NewCpu(emu.Image)
	if err != nil {
		emu = nil
		return
	}

	emu.Peripherals, err = io.NewPeripherals(emu.Cpu.Memory[:])
	if err != nil {
		emu = nil
		return
	}

	return
}

// Defines returns an iterator over all of the defines, ordered by name.
func Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Sorted(internal.IterSeq2Concat(
		maps.All(_emulator_defines),
		io.Defines(),
	))
}

// NewAssembler returns an assembler with the emulator defines predefined.
func NewAssembler() (as *asm.Assembler) {
	as = &asm.Assembler{}
	for name, value := range Defines() {
		as.Predefine(name, value)
	}
	return
}

// Reset reloads the image and clears the CPU. Switch and button inputs
// are retained.
func (emu *Emulator) Reset() (err error) {
	switches := emu.Switches()
	buttons := emu.Buttons()

	emu.Cpu.Verbose = emu.Verbose
	err = emu.Cpu.Reset(emu.Image)
	if err != nil {
		return
	}

	emu.SetSwitches(switches)
	emu.SetButtons(buttons)

	return
}

// Tick performs a single instruction.
func (emu *Emulator) Tick() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Register[isa.REG_PC]
	err = emu.Cpu.Tick()
	if err != nil {
		err = &ErrRuntime{Pc: pc, Err: err}
	}

	return
}

// Run performs up to count instructions, stopping at the first fault.
func (emu *Emulator) Run(count int) (ran int, err error) {
	for ran < count {
		err = emu.Tick()
		if err != nil {
			if emu.Verbose {
				log.Printf("emulator: stopped after %d: %v", ran, err)
			}
			return
		}
		ran++
	}

	return
}

// Halted returns true if the CPU has faulted.
func (emu *Emulator) Halted() bool {
	return emu.Fault() != nil
}

// Table renders the register file and the peripheral state.
func (emu *Emulator) Table() string {
	tw := table.NewWriter()
	tw.SetTitle(f("Ticks %d", emu.Ticks))
	tw.AppendHeader(table.Row{"", "+0", "+1", "+2", "+3"})

	for row := 0; row < isa.REGISTER_COUNT; row += 4 {
		cells := table.Row{fmt.Sprintf("R%d", row)}
		for n := row; n < row+4; n++ {
			cells = append(cells, fmt.Sprintf("%v=%04X", isa.Register(n), emu.Register[n]))
		}
		tw.AppendRow(cells)
	}

	tw.AppendSeparator()
	tw.AppendRow(table.Row{"SR", statusString(emu.Register[isa.REG_SR])})
	tw.AppendRow(table.Row{"LEDS", emu.LedString()})
	tw.AppendRow(table.Row{"SWITCHES", emu.SwitchString()})
	tw.AppendRow(table.Row{"BUTTONS", fmt.Sprintf("%05b", emu.Buttons())})

	if fault := emu.Fault(); fault != nil {
		var opcode cpu.ErrOpcode
		if errors.As(fault, &opcode) {
			tw.AppendRow(table.Row{"FAULT", opcode.Error()})
		}
	}

	return tw.Render()
}

// statusString renders all four flags of sr.
func statusString(sr uint16) string {
	all := isa.SR_C | isa.SR_Z | isa.SR_N | isa.SR_V
	return isa.StatusUpdate{Mask: all, Value: sr}.String()
}
