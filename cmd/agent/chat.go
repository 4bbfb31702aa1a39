package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/petasbytes/toolloop/conversation"
	"github.com/petasbytes/toolloop/runner"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive session with tool use",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		// Set up graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		sigch := make(chan os.Signal, 1)
		signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigch)
		go func() {
			select {
			case <-sigch:
				fmt.Println("\nExiting...")
				cancel()
			case <-ctx.Done():
			}
		}()

		return chatLoop(ctx, a, bufio.NewScanner(cmd.InOrStdin()))
	},
}

func chatLoop(ctx context.Context, a *app, scanner *bufio.Scanner) error {
	out := os.Stdout
	fmt.Fprintf(out, "Chat with %s (Ctrl-C to quit, tools: %s)\n", a.cfg.Model, strings.Join(a.registry.Names(), ", "))

	// stdin reader goroutine -> lines into channel
	inputCh := make(chan string)
	go func() {
		defer close(inputCh)
		for scanner.Scan() {
			select {
			case inputCh <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	var history conversation.History
outer:
	for {
		fmt.Fprint(out, "\u001b[94mYou\u001b[0m: ")
		var (
			user string
			ok   bool
		)
		select {
		case <-ctx.Done():
			break outer
		case user, ok = <-inputCh:
			if !ok {
				break outer
			}
		}
		if strings.TrimSpace(user) == "" {
			continue
		}

		res, err := a.runner.GenerateWithTools(ctx, user, runner.Params{System: a.cfg.System, History: history})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		history = res.History
		printToolTrail(out, res.ToolUsage)
		fmt.Fprintf(out, "\u001b[93mAssistant\u001b[0m: %s\n", res.Response)
		if res.Warning != "" {
			fmt.Fprintf(os.Stderr, "warning: %s\n", res.Warning)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stdin read error: %v\n", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
