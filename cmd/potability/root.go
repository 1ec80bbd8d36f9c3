package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"potability/config"
)

// NewRootCmd creates the root command. Without a subcommand it serves.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "potability",
		Short: "Water potability prediction form",
		Long: `potability serves a single-page form that collects nine water quality
measurements, derives three ratios and asks a pre-fitted classifier whether
the sample is safe to drink.

The scaler and classifier are read once at startup from a JSON artifact.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServeCmd,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default ./config.yaml or the XDG config dir)")
	cmd.PersistentFlags().StringP("model", "m", "", "Path to the model artifact, overrides model.path")
	cmd.PersistentFlags().IntP("port", "p", 0, "HTTP port, overrides http.port")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", err
	}
	cfg, source, err := config.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}

	if model, err := cmd.Flags().GetString("model"); err != nil {
		return nil, "", err
	} else if model != "" {
		cfg.Model.Path = model
	}
	if port, err := cmd.Flags().GetInt("port"); err != nil {
		return nil, "", err
	} else if port != 0 {
		cfg.Http.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, source, nil
}
