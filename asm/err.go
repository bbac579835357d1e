package asm

import (
	"errors"

	"github.com/ezrec/msp430/translate"
)

var f = translate.From

var (
	// Encoder errors
	ErrDisplacementRange = errors.New(f("jump displacement out of range"))
	ErrDisplacementOdd   = errors.New(f("jump displacement misaligned"))
	ErrLabelDuplicate    = errors.New(f("label duplicated"))
	ErrImageSize         = errors.New(f("image exceeds address space"))

	// Parser errors
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrGlobalSyntax     = errors.New(f("global data syntax"))
	ErrGlobalLabel      = errors.New(f("global data without label"))
	ErrOpcodeInvalid    = errors.New(f("opcode invalid"))
	ErrOperandCount     = errors.New(f("operand count"))
	ErrOperandSyntax    = errors.New(f("operand syntax"))
	ErrRegisterInvalid  = errors.New(f("register invalid"))
	ErrValueInvalid     = errors.New(f("value invalid"))
	ErrExpressionResult = errors.New(f("expression result not an integer"))
	ErrMacroSyntax      = errors.New(f(".macro syntax"))
	ErrMacroNesting     = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate   = errors.New(f(".macro duplicated"))
	ErrMacroLonely      = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm  = errors.New(f(".endm without .macro"))

	// Hex image errors
	ErrHexSyntax = errors.New(f("hex image syntax"))
)

// ErrLabelMissing is returned when a referenced label is never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrDisplacement is a jump that cannot reach its label.
type ErrDisplacement struct {
	Label  string
	Offset int // Offset of the jump word in the image.
	Bytes  int // Byte distance to the label.
	Err    error
}

func (err ErrDisplacement) Error() string {
	return f("jump at 0x%04x to %v (%d bytes): %v", err.Offset, err.Label, err.Bytes, err.Err)
}

func (err ErrDisplacement) Unwrap() error {
	return err.Err
}

// ErrSyntax locates a parse error.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrMacro locates an error inside a macro expansion.
type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %d: %v", err.Macro, err.Line, err.Err)
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
