// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/msp430/isa"
)

const (
	STACK_TOP   = uint16(0x8000) // Initial stack pointer set by the bootstrap.
	ENTRY_LABEL = "main"         // Label the bootstrap jumps to.
	IMAGE_LIMIT = 0x10000        // Images are limited to the address space.
)

// Encoder serializes globals and instructions into a loadable image.
//
// Code labels are recorded at the offset of the word before the labelled
// instruction, as the CPU advances PC by one word after a jump or call.
// Global labels are recorded at the offset of their data.
type Encoder struct {
	Verbose bool // If set, log each encoded instruction.

	Label map[string]int // Label offsets of the last Encode.

	image  []byte
	relocs []Relocation
}

// Encode an image with a default encoder.
func Encode(globals []isa.Global, instrs []isa.Instruction) (image []byte, err error) {
	enc := &Encoder{}
	return enc.Encode(globals, instrs)
}

// Encode the bootstrap, globals and instructions into an image.
// No image is returned on error.
func (enc *Encoder) Encode(globals []isa.Global, instrs []isa.Instruction) (image []byte, err error) {
	enc.Label = map[string]int{}
	enc.image = nil
	enc.relocs = nil

	defer func() {
		if err != nil {
			image = nil
		}
		enc.image = nil
		enc.relocs = nil
	}()

	bootstrap := []isa.Instruction{
		isa.MakeDouble(isa.OP_MOV, false, isa.Imm(STACK_TOP), isa.Reg(isa.REG_SP)),
		isa.MakeJump(isa.COND_ALWAYS, ENTRY_LABEL),
	}
	for _, in := range bootstrap {
		err = enc.encodeInstruction(in)
		if err != nil {
			return
		}
	}

	for _, global := range globals {
		err = enc.define(global.Label, len(enc.image))
		if err != nil {
			return
		}
		enc.image = append(enc.image, global.Bytes...)
	}
	if len(enc.image)%2 != 0 {
		enc.image = append(enc.image, 0)
	}

	for n, in := range instrs {
		err = enc.encodeInstruction(in.Normalize())
		if err != nil {
			err = fmt.Errorf("instruction %d '%v': %w", n, in, err)
			return
		}
	}

	if len(enc.image) > IMAGE_LIMIT {
		err = ErrImageSize
		return
	}

	var errs []error
	for _, rel := range enc.relocs {
		errs = append(errs, rel.Apply(enc.image, enc.Label))
	}
	err = errors.Join(errs...)
	if err != nil {
		return
	}

	image = enc.image
	return
}

func (enc *Encoder) define(label string, offset int) (err error) {
	if _, found := enc.Label[label]; found {
		err = fmt.Errorf("%w: %v", ErrLabelDuplicate, label)
		return
	}

	if enc.Verbose {
		log.Printf("label %v = 0x%04x", label, offset)
	}

	enc.Label[label] = offset
	return
}

func (enc *Encoder) emit(word uint16) {
	enc.image = binary.LittleEndian.AppendUint16(enc.image, word)
}

func (enc *Encoder) emitExtension(op isa.Operand) {
	word, label, ok := op.Extension()
	if !ok {
		return
	}
	if label != "" {
		enc.relocs = append(enc.relocs, Relocation{Offset: len(enc.image), Label: label, Patch: PATCH_WORD})
	}
	enc.emit(word)
}

func (enc *Encoder) encodeInstruction(in isa.Instruction) (err error) {
	if enc.Verbose && in.Family != isa.FAMILY_LABEL {
		log.Printf("0x%04x: %v", len(enc.image), in)
	}

	switch in.Family {
	case isa.FAMILY_LABEL:
		err = enc.define(in.Label, len(enc.image)-2)
	case isa.FAMILY_JUMP:
		enc.relocs = append(enc.relocs, Relocation{Offset: len(enc.image), Label: in.Label, Patch: PATCH_PCREL})
		enc.emit(uint16(isa.MakeJumpWord(in.Condition, 0)))
	case isa.FAMILY_SINGLE:
		if in.Single > isa.OP_CALL {
			err = fmt.Errorf("%w: %v", isa.ErrUnsupported, in.Single)
			return
		}
		src := in.Src
		enc.emit(uint16(isa.MakeSingleWord(in.Single, in.Byte, src.SourceMode(), isa.Register(src.RegisterBits()))))
		enc.emitExtension(src)
	case isa.FAMILY_DOUBLE:
		if in.Double == isa.OP_DADD || in.Double < isa.OP_MOV {
			err = fmt.Errorf("%w: %v", isa.ErrUnsupported, in.Double)
			return
		}
		var ad uint16
		ad, err = in.Dst.DestinationMode()
		if err != nil {
			return
		}
		src, dst := in.Src, in.Dst
		enc.emit(uint16(isa.MakeDoubleWord(in.Double, in.Byte,
			src.SourceMode(), isa.Register(src.RegisterBits()),
			ad, isa.Register(dst.RegisterBits()))))
		enc.emitExtension(src)
		enc.emitExtension(dst)
	default:
		err = fmt.Errorf("%w: %v", isa.ErrUnsupported, in)
	}

	return
}
