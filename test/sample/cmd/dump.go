package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zostay/postbox/transport"
	"github.com/zostay/postbox/transport/stdout"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [sample...]",
	Short: "Prints the compiled envelope of each sample message",
	Args:  cobra.ArbitraryArgs,
	RunE:  RunDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

// RunDump compiles the chosen samples and prints them.
func RunDump(cmd *cobra.Command, args []string) error {
	msgs, err := selectSamples(args)
	if err != nil {
		return err
	}

	return transport.Send(cmd.Context(), stdout.NewWithWriter(cmd.OutOrStdout()), msgs...)
}
