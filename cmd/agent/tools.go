package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool declarations sent to the model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		reg, closers, err := buildRegistry(cmd.Context(), cfg, log)
		defer func() {
			for _, c := range closers {
				_ = c()
			}
		}()
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reg.DescribeAll())
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
