package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/msp430/emulator"
)

var runSource sourceFlags

var (
	runSteps    int
	runSwitches uint16
	runButtons  uint8
	runScreen   bool
)

var runCmd = &cobra.Command{
	Use:   "run [flags] image.hex|source.asm",
	Short: "Run an image on the emulator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		image, err := runSource.load(args[0])
		if err != nil {
			return
		}

		emu, err := emulator.NewEmulator(image)
		if err != nil {
			return
		}
		emu.Verbose = verbose
		emu.SetSwitches(runSwitches)
		emu.SetButtons(runButtons)

		_, err = emu.Run(runSteps)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, emu.Table())
		if runScreen {
			fmt.Fprint(out, emu.Render())
		}

		return
	},
}

func init() {
	flags := runCmd.Flags()
	runSource.addFlags(flags)
	flags.IntVarP(&runSteps, "steps", "n", 1000, "instructions to run")
	flags.Uint16VarP(&runSwitches, "switches", "s", 0, "switch input word")
	flags.Uint8VarP(&runButtons, "buttons", "b", 0, "button input bits")
	flags.BoolVar(&runScreen, "screen", false, "print the framebuffer")
}
