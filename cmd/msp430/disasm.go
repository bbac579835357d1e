package main

import (
	"fmt"
	"iter"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/msp430/asm"
	"github.com/ezrec/msp430/isa"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm image.hex",
	Short: "Disassemble a hex image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		inf, err := os.Open(args[0])
		if err != nil {
			return
		}
		defer inf.Close()

		image, err := asm.ReadHex(inf)
		if err != nil {
			return
		}

		out := cmd.OutOrStdout()
		for line := range disassemble(image) {
			fmt.Fprintln(out, line)
		}
		return
	},
}

// disassemble lists an image, one instruction per line. Words that do
// not decode are listed as data.
func disassemble(image []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		words := make([]uint16, (len(image)+1)/2)
		for n := range image {
			words[n/2] |= uint16(image[n]) << (8 * (n % 2))
		}

		for n := 0; n < len(words); {
			pc := uint16(n * 2)
			text, size, err := isa.Disassemble(words[n:], pc)
			if err != nil {
				text, size = fmt.Sprintf(".word 0x%04x", words[n]), 2
			}

			var hex string
			for _, word := range words[n : n+size/2] {
				hex += fmt.Sprintf("%04x ", word)
			}

			if !yield(fmt.Sprintf("%04x: %-15s %v", pc, hex, text)) {
				return
			}
			n += size / 2
		}
	}
}
