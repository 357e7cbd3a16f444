package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"retain/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}
			written, err := config.WriteSample(target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", written)
			fmt.Fprintln(out, "Edit the file to point classifier.base_url at your model server before scanning.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Show the effective configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s", path)
			if !exists {
				fmt.Fprint(out, " (missing; defaults in effect)")
			}
			fmt.Fprintln(out)

			rows := [][]string{
				{"paths.data_dir", cfg.Paths.DataDir},
				{"paths.log_dir", cfg.Paths.LogDir},
				{"scan.chunk_size", fmt.Sprintf("%d", cfg.Scan.ChunkSize)},
				{"scan.max_concurrency", fmt.Sprintf("%d", cfg.Scan.MaxConcurrency)},
				{"scan.retention_years", fmt.Sprintf("%d", cfg.Scan.RetentionYears)},
				{"scan.max_context_lines", fmt.Sprintf("%d", cfg.Scan.MaxContextLines)},
				{"scan.max_context_chars", fmt.Sprintf("%d", cfg.Scan.MaxContextChars)},
				{"scan.age_basis", cfg.Scan.AgeBasis},
				{"classifier.backend", cfg.Classifier.Backend},
				{"classifier.base_url", cfg.Classifier.BaseURL},
				{"classifier.model", cfg.Classifier.Model},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
				{"history.enabled", fmt.Sprintf("%t", cfg.History.Enabled)},
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Setting", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}
