package isa

import (
	"errors"

	"github.com/ezrec/msp430/translate"
)

var f = translate.From

var (
	ErrDestinationMode = errors.New(f("addressing mode not allowed as destination"))
	ErrSymbolicMode    = errors.New(f("symbolic addressing mode not supported"))
	ErrUnsupported     = errors.New(f("opcode not supported"))
	ErrIllegal         = errors.New(f("illegal opcode"))
	ErrWordsShort      = errors.New(f("instruction words truncated"))
	ErrOperandMissing  = errors.New(f("operand missing"))
)
