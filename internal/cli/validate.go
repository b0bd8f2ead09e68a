package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/cyclebench/internal/config"
	"github.com/wesleyorama2/cyclebench/internal/lifecycle/runner"
	"github.com/wesleyorama2/cyclebench/internal/output"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a suite file without running it",
		Long: `Check a suite file against the suite schema, verify every run's settings and
thresholds, and confirm that each named component exists.`,
		Args: cobra.NoArgs,
		RunE: validateSuite,
	}

	cmd.Flags().StringP("config", "c", "", "Suite configuration file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func validateSuite(cmd *cobra.Command, _ []string) error {
	_, noColor := globalFlags(cmd)
	noColor = !output.UseColor(cmd.OutOrStdout(), noColor)
	configFile, _ := cmd.Flags().GetString("config")

	suite, err := config.LoadConfig(configFile)
	if err == nil {
		config.ApplyDefaults(suite)
		err = runner.New(runner.Options{}).Check(suite)
	}

	out := cmd.OutOrStdout()
	if err != nil {
		fmt.Fprintf(out, "%s %s is invalid\n", output.ErrorIcon(noColor), configFile)
		fmt.Fprintln(out, err)
		return fmt.Errorf("%s: validation failed", configFile)
	}

	fmt.Fprintf(out, "%s %s is valid (%d runs)\n", output.SuccessIcon(noColor), configFile, len(suite.Runs))
	return nil
}
