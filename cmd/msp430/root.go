package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ezrec/msp430/asm"
	"github.com/ezrec/msp430/emulator"
)

var rootCmd = &cobra.Command{
	Use:   "msp430",
	Short: "MSP430 assembler and emulator",
	Long: `msp430 assembles MSP430 source into a flat memory image, and runs
images on a pipelined emulator with a memory-mapped framebuffer, LEDs,
switches and buttons.`,
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose mode")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(disasmCmd)
}

var verbose bool

// sourceFlags are the options for loading assembler source.
type sourceFlags struct {
	defines []string
}

func (sf *sourceFlags) addFlags(flags *pflag.FlagSet) {
	flags.StringArrayVarP(&sf.defines, "define", "D", nil, "predefine an equate, as NAME=VALUE")
}

// isSource returns true for assembler source file names.
func isSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".s", ".asm":
		return true
	}
	return false
}

// load reads an image from a hex file, or assembles it from source.
func (sf *sourceFlags) load(path string) (image []byte, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	if !isSource(path) {
		image, err = asm.ReadHex(bytes.NewReader(data))
		if err != nil {
			err = fmt.Errorf("%v: %w", path, err)
		}
		return
	}

	as := emulator.NewAssembler()
	as.Verbose = verbose
	for _, define := range sf.defines {
		name, value, ok := strings.Cut(define, "=")
		if !ok {
			value = "1"
		}
		as.Predefine(name, value)
	}

	image, err = as.Assemble(bytes.NewReader(data))
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}
	return
}
