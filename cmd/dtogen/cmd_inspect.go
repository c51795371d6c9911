package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strogmv/dtogen/compiler"
)

func newInspectCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <model>",
		Short: "Print what the parser recovered from a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := a.pipeline.ResolveModel(ctx, args[0])
			res := a.pipeline.Synthesize(ctx, path.Join(path.Dir(args[0]), in.Model.Name), in)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			} else {
				printInspection(cmd.OutOrStdout(), res)
			}
			if !res.Model.IsReadable {
				return compiler.WrapContractError(compiler.StageSource, compiler.ErrCodeSourceUnreadable, args[0],
					fmt.Errorf("%w %s", compiler.ErrUnreadableModel, res.Model.FileName))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full analysis as JSON")

	return cmd
}

func printInspection(w io.Writer, res compiler.ModelResult) {
	m := res.Model
	fmt.Fprintf(w, "model:     %s (%s)\n", m.Name, m.FilePath)
	fmt.Fprintf(w, "readable:  %t\n", m.IsReadable)
	if !m.IsReadable {
		return
	}
	fmt.Fprintf(w, "dto:       %s -> %s\n", res.Dto.ClassName, res.Dto.ExportPath)
	fmt.Fprintf(w, "validator: %s -> %s\n", res.Validator.Variable, res.Validator.ExportPath)
	fmt.Fprintln(w, "properties:")
	for _, p := range m.Properties {
		tokens := make([]string, 0, len(p.Types))
		for _, t := range p.Types {
			tokens = append(tokens, t.Token())
		}
		name := p.Name
		if p.IsOptionallyModified {
			name += "?"
		}
		fmt.Fprintf(w, "  %-20s %-14s %s\n", name, compiler.PropertyKind(p), strings.Join(tokens, " | "))
	}
	if len(res.DtoImports) > 0 {
		fmt.Fprintln(w, "imports:")
		for _, imp := range res.DtoImports {
			fmt.Fprintf(w, "  %s\n", imp)
		}
	}
}
