package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the classifier backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			selected, name, err := newBackend(cfg, offline)
			if err != nil {
				return err
			}
			if err := selected.HealthCheck(cmd.Context()); err != nil {
				return fmt.Errorf("backend %s unhealthy: %w", name, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Backend %s is healthy", name)
			if name == "ollama" {
				fmt.Fprintf(out, " (%s, model %s)", cfg.Classifier.BaseURL, cfg.Classifier.Model)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Check the keyword heuristic instead of the model server")
	return cmd
}
