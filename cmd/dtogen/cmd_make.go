package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strogmv/dtogen/compiler"
	"github.com/strogmv/dtogen/internal/pkg/logger"
)

type makeFlags struct {
	model     string
	validator bool
	force     bool
	dryRun    bool
}

func (f *makeFlags) register(cmd *cobra.Command, withValidator bool) {
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "model to build from; defaults to the one named like the artifact")
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "overwrite existing files")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "report actions without writing")
	if withValidator {
		cmd.Flags().BoolVar(&f.validator, "validator", false, "also create a validator")
	}
}

func newMakeDtoCmd(a *app) *cobra.Command {
	var f makeFlags

	cmd := &cobra.Command{
		Use:   "make:dto <name>",
		Short: "Create a DTO for one model",
		Long: `Create a DTO (and optionally a VineJS validator) for one model.

When the model cannot be read a plain DTO is created instead. If the model was
named explicitly with --model nothing is written and a warning is logged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, out, err := a.pipeline.Make(ctx, compiler.MakeRequest{
				Name:      args[0],
				Model:     f.model,
				Dto:       true,
				Validator: f.validator,
				Force:     f.force,
				DryRun:    f.dryRun,
			})
			if errors.Is(err, compiler.ErrUnreadableModel) {
				logger.From(ctx).Warn("unable to find or read model, nothing written", "model", f.model, "file", res.Model.FilePath)
				return nil
			}
			if err != nil {
				return fmt.Errorf("make dto: %w", err)
			}
			if !res.Model.IsReadable {
				logger.From(ctx).Warn("model not readable, created a plain dto", "file", res.Model.FilePath)
			}
			printResults(cmd.OutOrStdout(), out, f.dryRun)
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

func newMakeValidatorCmd(a *app) *cobra.Command {
	var f makeFlags

	cmd := &cobra.Command{
		Use:     "make:validator <name>",
		Aliases: []string{"make:dto:validator"},
		Short:   "Create a VineJS validator for one model",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, out, err := a.pipeline.Make(ctx, compiler.MakeRequest{
				Name:      args[0],
				Model:     f.model,
				Validator: true,
				Force:     f.force,
				DryRun:    f.dryRun,
			})
			if err != nil {
				return fmt.Errorf("make validator: %w", err)
			}
			if !res.Model.IsReadable {
				logger.From(ctx).Warn("model not readable, created a plain validator", "file", res.Model.FilePath)
			}
			printResults(cmd.OutOrStdout(), out, f.dryRun)
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}
