package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/msp430/asm"
)

var buildSource sourceFlags
var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build [flags] source.asm",
	Short: "Assemble source into a hex image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		image, err := buildSource.load(args[0])
		if err != nil {
			return
		}

		if buildOutput == "" || buildOutput == "-" {
			err = asm.WriteHex(cmd.OutOrStdout(), image)
			return
		}

		ouf, err := os.Create(buildOutput)
		if err != nil {
			return
		}
		defer func() {
			cerr := ouf.Close()
			if err == nil {
				err = cerr
			}
		}()

		err = asm.WriteHex(ouf, image)
		return
	},
}

func init() {
	buildSource.addFlags(buildCmd.Flags())
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "-", "hex image output")
}
