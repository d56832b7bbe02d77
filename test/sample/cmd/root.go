package cmd

import (
	"github.com/spf13/cobra"
)

var (
	fromAddr string
	toAddr   string
)

var rootCmd = &cobra.Command{
	Use:   "sample",
	Short: "Tools for compiling and sending the sample messages",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fromAddr, "from",
		"Postbox Sample <sample@example.com>", "sender of the sample messages")
	rootCmd.PersistentFlags().StringVar(&toAddr, "to",
		"recipient@example.com", "recipient of the sample messages")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
