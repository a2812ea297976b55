package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zongruxie4/amplication/compiler"
	"github.com/zongruxie4/amplication/compiler/gen"
)

// GenerateCmd returns the generate command.
func GenerateCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the output files of all entities",
		Example: `  dsg generate --schema entities/ --target generated
  dsg generate --driver sqlite --dsn schema.db --dialect graphql`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := f.env(cmd)
			if err != nil {
				return err
			}
			return e.generate(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (e *env) generate(ctx context.Context, w io.Writer) error {
	entities, err := e.entities(ctx)
	if err != nil {
		return err
	}
	report, err := compiler.Generate(ctx, e.cfg, entities...)
	if report != nil {
		printReport(w, report)
	}
	return err
}

func printReport(w io.Writer, r *compiler.Report) {
	var (
		write  = color.New(color.FgGreen).Sprint("WRITE ")
		cached = color.New(color.FgBlue).Sprint("CACHED")
		failed = color.New(color.FgRed).Sprint("FAILED")
	)
	for _, f := range r.Files {
		status := write
		if f.Entity != "" && slices.Contains(r.Cached, f.Entity) {
			status = cached
		}
		fmt.Fprintf(w, "%s %s\n", status, f.Path)
	}
	for _, name := range slices.Sorted(maps.Keys(r.Failures)) {
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(w, "%s %s\n", failed, name)
	}
}

// FeaturesCmd returns the command listing the feature-flags.
func FeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List the feature-flags",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			for _, f := range gen.AllFeatures {
				state := color.New(color.FgYellow).Sprint("off")
				if f.Default {
					state = color.New(color.FgGreen).Sprint("on ")
				}
				fmt.Fprintf(w, "%s %-18s %-8s %s\n", state, f.Name, stage(f.Stage), f.Description)
			}
		},
	}
}

func stage(s gen.FeatureStage) string {
	switch s {
	case gen.Experimental:
		return "exp"
	case gen.Alpha:
		return "alpha"
	case gen.Beta:
		return "beta"
	case gen.Stable:
		return "stable"
	}
	return "unknown"
}
