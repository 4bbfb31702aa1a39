package main

import (
	"fmt"
	"os"

	"github.com/petasbytes/toolloop/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agent",
	Short: "Tool-using assistant over a hosted model API",
	Long: `agent sends prompts to Anthropic or OpenAI models, lets the model call
registered tools and feeds the results back until it answers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if _, err := config.LoadEnvFile(envFile); err != nil {
			return err
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().String("env-file", ".env", "KEY=VALUE file exported before config is read")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :2112")
	rootCmd.PersistentFlags().String("toolset", "", "comma separated toolsets, 'all' or 'none' (overrides config)")
}
