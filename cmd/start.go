package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/adapters/tui"
	"github.com/tempo-cli/tempo/internal/domain"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start [mode]",
	Short: "Start a focus session",
	Long: `Start the countdown for a work or break interval. With no argument a
work session is started. Modes: work, short_break, long_break.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := ""
		if len(args) > 0 {
			mode = args[0]
		}
		return runTimer(mode)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

// runTimer builds a countdown machine and drives it interactively until the
// user quits.
func runTimer(modeArg string) error {
	machine := newMachine()
	defer machine.Close()

	if modeArg != "" {
		mode, err := domain.ValidateMode(modeArg)
		if err != nil {
			return fmt.Errorf("invalid mode %q: must be work, short_break, or long_break", modeArg)
		}
		machine.SwitchMode(mode)
	}

	machine.Start()
	return tui.Run(machine)
}
