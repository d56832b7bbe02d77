package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zostay/postbox/config"
	"github.com/zostay/postbox/transport"
)

var (
	configPath string
	logLevel   string
)

var sendCmd = &cobra.Command{
	Use:   "send [sample...]",
	Short: "Sends the sample messages with the configured transport",
	Args:  cobra.ArbitraryArgs,
	RunE:  RunSend,
}

func init() {
	sendCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML configuration file")
	sendCmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn, or error")
	rootCmd.AddCommand(sendCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Load()
	}
	return config.LoadFromFile(configPath)
}

// RunSend delivers the chosen samples through the configured transport.
func RunSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger := config.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

	msgs, err := selectSamples(args)
	if err != nil {
		return err
	}

	t, err := config.NewTransport(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("sending samples", "transport", t.Name(), "count", len(msgs))
	if err := transport.Send(cmd.Context(), t, msgs...); err != nil {
		return err
	}
	logger.Info("samples sent", "transport", t.Name())

	return nil
}
