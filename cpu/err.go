package cpu

import (
	"errors"

	"github.com/ezrec/msp430/isa"
	"github.com/ezrec/msp430/translate"
)

var f = translate.From

var (
	ErrHalted    = errors.New(f("cpu halted by prior fault"))
	ErrImageSize = errors.New(f("image exceeds memory"))
)

// ErrOpcode is the location and word of a faulting instruction.
type ErrOpcode struct {
	Pc   uint16
	Word isa.Word
}

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x at 0x%04x", uint16(eo.Word), eo.Pc)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}
