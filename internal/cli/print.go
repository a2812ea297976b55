package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zongruxie4/amplication/compiler"
)

// PrintCmd returns the command printing the output of one entity.
func PrintCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:     "print <entity>",
		Short:   "Print the generated files of an entity without writing them",
		Example: `  dsg print Customer --schema entities/ --dialect nest`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := f.env(cmd)
			if err != nil {
				return err
			}
			entities, err := e.entities(cmd.Context())
			if err != nil {
				return err
			}
			name := args[0]
			report, err := compiler.Build(cmd.Context(), e.cfg, entities...)
			if report == nil {
				return err
			}
			if err, ok := report.Failures[name]; ok {
				return err
			}
			files := report.Entity(name)
			if len(files) == 0 {
				return fmt.Errorf("entity %q not found", name)
			}
			w := cmd.OutOrStdout()
			for i, file := range files {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintln(w, color.New(color.Bold).Sprint("==> "+file.Path+" <=="))
				fmt.Fprint(w, string(file.Content))
			}
			return nil
		},
	}
}
