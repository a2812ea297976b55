// Package cli implements the dsg command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zongruxie4/amplication/compiler/gen"
	"github.com/zongruxie4/amplication/internal/store"
	"github.com/zongruxie4/amplication/schema"
)

// flags shared by all commands.
type flags struct {
	project  string
	verbose  bool
	schema   []string
	driver   string
	dsn      string
	target   string
	dialects []string
	pkg      string
	workers  int
	cache    string
	enable   []string
	disable  []string
}

// RootCmd returns the dsg command with all subcommands.
func RootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "dsg",
		Short: "Generate the DTOs and resolvers of a data service",
		Long: `dsg generates the data transfer objects and resolver bindings of a
data service from its entity definitions. Definitions are read from YAML or
JSON files, or from a SQL schema store.`,
		SilenceUsage: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.project, "project", "p", ProjectFile, "project file")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log debug messages")
	pf.StringSliceVarP(&f.schema, "schema", "s", nil, "entity definition files or directories")
	pf.StringVar(&f.driver, "driver", "", "driver of the schema store (sqlite, postgres, mysql)")
	pf.StringVar(&f.dsn, "dsn", "", "data source name of the schema store")
	pf.StringVarP(&f.target, "target", "o", "", "output directory")
	pf.StringSliceVarP(&f.dialects, "dialect", "d", nil, "output dialects (nest, graphql, go)")
	pf.StringVar(&f.pkg, "package", "", "package name of the Go output")
	pf.IntVarP(&f.workers, "workers", "w", 0, "entities generated in parallel")
	pf.StringVar(&f.cache, "cache", "", "enable incremental generation with the given manifest file")
	pf.StringSliceVar(&f.enable, "feature", nil, "enable feature-flags")
	pf.StringSliceVar(&f.disable, "disable-feature", nil, "disable feature-flags")

	cmd.AddCommand(
		GenerateCmd(f),
		PrintCmd(f),
		WatchCmd(f),
		FeaturesCmd(),
	)
	return cmd
}

// env is the resolved configuration of a command run.
type env struct {
	cfg     *gen.Config
	project *Project
	flags   *flags
}

func (f *flags) env(cmd *cobra.Command) (*env, error) {
	project, err := LoadProject(f.project, cmd.Flags().Changed("project"))
	if err != nil {
		return nil, err
	}
	opts, err := project.Options()
	if err != nil {
		return nil, err
	}
	if f.target != "" {
		opts = append(opts, gen.WithTarget(f.target))
	}
	if len(f.dialects) > 0 {
		opts = append(opts, gen.WithDialects(f.dialects...))
	}
	if f.pkg != "" {
		opts = append(opts, gen.WithPackage(f.pkg))
	}
	if f.workers != 0 {
		opts = append(opts, gen.WithWorkers(f.workers))
	}
	if f.cache != "" {
		opts = append(opts, gen.WithCache(f.cache))
	}
	enable, err := features(f.enable)
	if err != nil {
		return nil, err
	}
	disable, err := features(f.disable)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		gen.WithFeatures(enable...),
		gen.WithoutFeatures(disable...),
		gen.WithLogger(logger(cmd.ErrOrStderr(), f.verbose)),
	)
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	if len(f.schema) > 0 {
		project.Schema = f.schema
	}
	if f.driver != "" || f.dsn != "" {
		project.Store = &Store{Driver: f.driver, DSN: f.dsn}
	}
	return &env{cfg: cfg, project: project, flags: f}, nil
}

// entities loads the entity definitions from the schema files or the store.
func (e *env) entities(ctx context.Context) ([]*schema.Entity, error) {
	p := e.project
	switch {
	case p.Store != nil && len(p.Schema) > 0:
		return nil, fmt.Errorf("use either schema files or a schema store")
	case p.Store != nil:
		s, err := store.Open(ctx, p.Store.Driver, p.Store.DSN, store.WithLogger(e.cfg.Logger))
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.Entities(ctx)
	case len(p.Schema) == 0:
		return nil, fmt.Errorf("no entity definitions: set --schema or --driver and --dsn")
	}
	var entities []*schema.Entity
	for _, path := range p.Schema {
		es, err := schema.LoadPath(path)
		if err != nil {
			return nil, err
		}
		entities = append(entities, es...)
	}
	return entities, nil
}

func logger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
