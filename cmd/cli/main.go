package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"motiflab/internal/config"
	"motiflab/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Ignoring unreadable .env file: %v", err)
	}

	// Ctrl-C cancels a running analysis
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "motiflab",
		Short:         "Statistical analyses over motif, module and sequence datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newKindsCmd(),
		newGenerateCmd(),
	)
	return rootCmd
}

// newContainer wires the service from environment configuration. The CLI exits
// before anything is scraped, so metrics stay off.
func newContainer() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Metrics.Enabled = false
	return container.New(cfg)
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the available analyses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appContainer, err := newContainer()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range appContainer.AnalysisService.Capabilities() {
				flags := ""
				if c.Concurrent {
					flags = " [concurrent]"
				}
				fmt.Fprintf(out, "%-18s %s%s\n", c.Kind, c.Description, flags)
			}
			return nil
		},
	}
}
