// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/msp430/isa"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"STACK_TOP": fmt.Sprintf("%#x", STACK_TOP),
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reIdentifier = regexp.MustCompile(`[A-Za-z_.][A-Za-z0-9_.]*`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
)

// Assembler is a line oriented MSP430 assembler.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Globals      []isa.Global      // Static data, in order of definition.
	Instructions []isa.Instruction // Instructions and code labels.

	predefine map[string]string   // Predefines
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expansions int // Count of macro expansions, for `\@` substitution.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// Assemble parses the input and encodes it into an image.
func (asm *Assembler) Assemble(input io.Reader) (image []byte, err error) {
	globals, instrs, err := asm.Parse(input)
	if err != nil {
		return
	}

	enc := &Encoder{Verbose: asm.Verbose}
	image, err = enc.Encode(globals, instrs)
	return
}

// Parse assembly text into globals and instructions.
func (asm *Assembler) Parse(input io.Reader) (globals []isa.Global, instrs []isa.Instruction, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Globals = nil
	asm.Instructions = nil
	asm.expansions = 0
	asm.Macro = map[string](*Macro){}
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(text)
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
				Args:   words[2:],
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	globals = slices.Clone(asm.Globals)
	instrs = slices.Clone(asm.Instructions)
	return
}

// valueOf returns the 16-bit value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	v64, err := asm.wideValueOf(word)
	if err != nil {
		return
	}

	if v64 > 0xffff || v64 < -0x8000 {
		err = fmt.Errorf("%w: %v", ErrValueInvalid, word)
		return
	}

	value = uint16(v64)
	return
}

// wideValueOf returns the value of a simple word, without truncation.
func (asm *Assembler) wideValueOf(word string) (value int64, err error) {
	word = strings.TrimSpace(word)
	if equate, ok := asm.Equate[word]; ok {
		word = equate
	}

	invert := false
	if strings.HasPrefix(word, "~") {
		invert = true
		word = word[1:]
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		var u64 uint64
		u64, err = strconv.ParseUint(word, 0, 64)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrValueInvalid, word)
			return
		}
		value = int64(u64)
	}

	if invert {
		value = ^value
	}

	return
}

// parenEval evaluates a `$(...)` expression with starlark, with the
// integer equates predeclared.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = asm.wideValueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = fmt.Errorf("%w: %v", ErrExpressionResult, expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = fmt.Errorf("%w: %v", ErrExpressionResult, expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = fmt.Errorf("%w: %v", ErrExpressionResult, expr)
		return
	}
	return
}

// expand rewrites character literals and `$()` expressions as numbers.
func (asm *Assembler) expand(line string) (text string, err error) {
	text = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%d", str[0])
	})

	text = reExpression.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", uint64(value))
	})

	return
}

// substitute replaces equates in operand text.
func (asm *Assembler) substitute(text string) string {
	return reIdentifier.ReplaceAllStringFunc(text, func(word string) string {
		equate, ok := asm.Equate[word]
		if ok {
			return equate
		}
		return word
	})
}

// parseLine evaluates a line of assembly text.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line, err = asm.expand(line)
	if err != nil {
		return
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = fmt.Errorf("%w: %v", ErrEquateDuplicate, words[1])
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	// label: ...
	label, rest, found := strings.Cut(words[0], ":")
	if found && reLabel.MatchString(label) {
		asm.Instructions = append(asm.Instructions, isa.MakeLabel(label))
		words = words[1:]
		if len(rest) > 0 {
			words = append([]string{rest}, words...)
		}
		if len(words) == 0 {
			return
		}
	}

	mnemonic := words[0]
	args := asm.substitute(strings.Join(words[1:], " "))

	if strings.HasPrefix(mnemonic, ".") {
		err = asm.parseData(mnemonic, args)
		return
	}

	// Macro expansion
	macro, ok := asm.Macro[mnemonic]
	if ok {
		err = asm.expandMacro(mnemonic, macro, splitOperands(args))
		return
	}

	instrs, err := asm.parseInstruction(mnemonic, splitOperands(args))
	if err != nil {
		return
	}

	asm.Instructions = append(asm.Instructions, instrs...)
	return
}

// expandMacro parses the lines of a macro with its arguments as equates.
func (asm *Assembler) expandMacro(name string, macro *Macro, args []string) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	// Turn args into equs
	old_equate := maps.Clone(asm.Equate)
	for n, arg := range macro.Args {
		asm.Equate[arg] = args[n]
	}
	defer func() { asm.Equate = old_equate }()

	asm.expansions++
	unique := fmt.Sprintf("%v_%v_", name, asm.expansions)

	for n, line := range macro.Lines {
		lineno := macro.LineNo + n

		line = strings.ReplaceAll(line, `\@`, unique)
		err = asm.parseLine(line, lineno)
		if err != nil {
			err = &ErrMacro{Macro: name, Line: lineno, Err: err}
			return
		}
	}

	return
}

// splitOperands splits operand text on commas outside of parentheses.
func splitOperands(text string) (args []string) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	depth := 0
	start := 0
	for n, c := range text {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(text[start:n]))
				start = n + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(text[start:]))
	return
}

// parseData handles the global data directives.
func (asm *Assembler) parseData(directive string, args string) (err error) {
	// The label for a global is the label just before it.
	count := len(asm.Instructions)
	if count == 0 || asm.Instructions[count-1].Family != isa.FAMILY_LABEL {
		err = fmt.Errorf("%w: %v", ErrGlobalLabel, directive)
		return
	}
	label := asm.Instructions[count-1].Label
	asm.Instructions = asm.Instructions[:count-1]

	var data []byte
	values := splitOperands(args)

	switch directive {
	case ".word":
		for _, word := range values {
			var value uint16
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			data = binary.LittleEndian.AppendUint16(data, value)
		}
	case ".byte":
		for _, word := range values {
			var value int64
			value, err = asm.wideValueOf(word)
			if err != nil {
				return
			}
			if value > 0xff || value < -0x80 {
				err = fmt.Errorf("%w: %v", ErrValueInvalid, word)
				return
			}
			data = append(data, byte(value))
		}
	case ".bits":
		// .bits VALUE,NBITS stores NBITS/8 little-endian bytes.
		if len(values) != 2 {
			err = fmt.Errorf("%w: %v", ErrGlobalSyntax, args)
			return
		}
		var value, nbits int64
		value, err = asm.wideValueOf(values[0])
		if err != nil {
			return
		}
		nbits, err = asm.wideValueOf(values[1])
		if err != nil {
			return
		}
		if nbits <= 0 || nbits > 64 || nbits%8 != 0 {
			err = fmt.Errorf("%w: %v", ErrGlobalSyntax, args)
			return
		}
		data = binary.LittleEndian.AppendUint64(nil, uint64(value))[:nbits/8]
	default:
		err = fmt.Errorf("%w: %v", ErrOpcodeInvalid, directive)
		return
	}

	if len(data) == 0 {
		err = fmt.Errorf("%w: %v", ErrGlobalSyntax, directive)
		return
	}

	asm.Globals = append(asm.Globals, isa.Global{Label: label, Bytes: data})
	return
}
