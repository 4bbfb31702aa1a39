package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/petasbytes/toolloop/runner"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [prompt...]",
	Short: "Send one prompt and print the answer",
	Long: `Sends a single prompt to the configured model. Unless --no-tools is set the
model may call the registered tools before it answers.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := askParams(cmd, a)
		if err != nil {
			return err
		}
		prompt := strings.Join(args, " ")
		out := cmd.OutOrStdout()
		showHistory, _ := cmd.Flags().GetBool("show-history")

		if noTools, _ := cmd.Flags().GetBool("no-tools"); noTools {
			reply, err := a.runner.Generate(cmd.Context(), prompt, p)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, reply.Response)
			if showHistory {
				return reply.History.WriteJSON(out)
			}
			return nil
		}

		res, err := a.runner.GenerateWithTools(cmd.Context(), prompt, p)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, res.Response)
		printToolTrail(out, res.ToolUsage)
		if res.Warning != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", res.Warning)
		}
		if showHistory {
			return res.History.WriteJSON(out)
		}
		return nil
	},
}

func askParams(cmd *cobra.Command, a *app) (runner.Params, error) {
	p := runner.Params{System: a.cfg.System}
	if s, _ := cmd.Flags().GetString("system"); s != "" {
		p.System = s
	}
	p.MaxIterations, _ = cmd.Flags().GetInt("max-iterations")
	p.MaxTokens, _ = cmd.Flags().GetInt64("max-tokens")
	if cmd.Flags().Changed("temperature") {
		t, err := cmd.Flags().GetFloat64("temperature")
		if err != nil {
			return runner.Params{}, err
		}
		p.Temperature = &t
	}
	return p, nil
}

func printToolTrail(w io.Writer, usage []runner.Invocation) {
	for _, inv := range usage {
		if inv.Failed() {
			fmt.Fprintf(w, "  \u001b[91mtool\u001b[0m %s(%v) failed: %s\n", inv.Tool, inv.Input, inv.Error)
			continue
		}
		fmt.Fprintf(w, "  \u001b[92mtool\u001b[0m %s(%v) -> %v [%s]\n", inv.Tool, inv.Input, inv.Output, inv.Duration)
	}
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().String("system", "", "system instruction (overrides config)")
	askCmd.Flags().Int("max-iterations", 0, "model rounds allowed for tool use (0 = config)")
	askCmd.Flags().Int64("max-tokens", 0, "output token cap per round (0 = config)")
	askCmd.Flags().Float64("temperature", 0, "sampling temperature (default from config)")
	askCmd.Flags().Bool("show-history", false, "print the conversation as JSON after the answer")
	askCmd.Flags().Bool("no-tools", false, "send the prompt without tool declarations")
}
