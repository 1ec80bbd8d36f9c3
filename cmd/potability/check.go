package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"potability/ml"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate a model artifact",
		Long: `Check loads the model artifact and runs one prediction on an all-zero
measurement, which catches a classifier fitted for a different number of
features before the server is started.`,
		Args: cobra.NoArgs,
		RunE: runCheckCmd,
	}
}

func runCheckCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bundle, err := ml.LoadBundle(cfg.Model.Path)
	if err != nil {
		return err
	}
	predictor, err := ml.NewPredictor(bundle, 0)
	if err != nil {
		return err
	}
	label, err := predictor.PredictMeasurement(ml.RawMeasurement{})
	if err != nil {
		return fmt.Errorf("%s: %w", bundle.Source, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "artifact:   %s\n", bundle.Source)
	fmt.Fprintf(out, "scaler:     %s\n", bundle.ScalerType)
	fmt.Fprintf(out, "classifier: %s\n", bundle.ModelType)
	fmt.Fprintf(out, "zero input: %s\n", label)
	return nil
}
