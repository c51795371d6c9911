package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strogmv/dtogen/compiler"
)

func newGenerateDtosCmd(a *app) *cobra.Command {
	var (
		validator bool
		force     bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "generate:dtos",
		Short: "Create DTOs for every model",
		Long: `Create a DTO for every model in the models directory.

If any model cannot be read the command fails before writing anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.pipeline.Generate(cmd.Context(), compiler.GenerateRequest{
				Dto:       true,
				Validator: validator,
				Force:     force,
				DryRun:    dryRun,
			})
			printResults(cmd.OutOrStdout(), out, dryRun && err == nil)
			if err != nil {
				return fmt.Errorf("generate dtos: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&validator, "validator", false, "also create validators")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report actions without writing")

	return cmd
}

func newGenerateValidatorsCmd(a *app) *cobra.Command {
	var (
		force  bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "generate:validators",
		Short: "Create VineJS validators for every model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.pipeline.Generate(cmd.Context(), compiler.GenerateRequest{
				Validator: true,
				Force:     force,
				DryRun:    dryRun,
			})
			printResults(cmd.OutOrStdout(), out, dryRun && err == nil)
			if err != nil {
				return fmt.Errorf("generate validators: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report actions without writing")

	return cmd
}
