package compiler

import (
	"context"
	"errors"

	"github.com/zongruxie4/amplication/compiler/gen"
	"github.com/zongruxie4/amplication/schema"
)

// Generate runs the pipeline and writes the output files under the target
// directory. Files are written only after every entity finished rendering,
// and nothing is written if ctx is canceled before. The output of features
// that are disabled is removed from the target.
func Generate(ctx context.Context, cfg *gen.Config, entities ...*schema.Entity) (*Report, error) {
	report, manifest, err := build(ctx, cfg, entities)
	if report == nil {
		return nil, err
	}
	return report, commit(ctx, cfg, report, manifest, err)
}

// commit writes the files of a built report. failed holds the failures of
// the build; they are kept in the returned error.
func commit(ctx context.Context, cfg *gen.Config, report *Report, manifest *Manifest, failed error) error {
	errs := []error{failed}
	if err := ctx.Err(); err != nil {
		return errors.Join(append(errs, err)...)
	}
	w := gen.NewWriter(cfg)
	if err := write(ctx, w, report.Files); err != nil {
		return errors.Join(append(errs, err)...)
	}
	for _, f := range gen.AllFeatures {
		if cfg.Enabled(f) {
			continue
		}
		if err := f.Cleanup(cfg); err != nil {
			errs = append(errs, gen.NewGenerationError("cleanup", "", f.Name, err))
		}
	}
	if cfg.Enabled(gen.FeatureCache) {
		if err := save(w, cfg, manifest); err != nil {
			errs = append(errs, err)
		}
	}
	m := w.Metrics()
	cfg.Logger.Info("files written", "target", cfg.Target, "files", m.FilesWritten, "bytes", m.TotalBytes)
	return errors.Join(errs...)
}

func write(ctx context.Context, w *gen.Writer, files []*File) error {
	out := make([]gen.File, len(files))
	for i, f := range files {
		out[i] = gen.File{Path: f.Path, Content: f.Content}
	}
	return w.WriteAll(ctx, out)
}

func save(w *gen.Writer, cfg *gen.Config, m *Manifest) error {
	b, err := m.Encode()
	if err != nil {
		return gen.NewGenerationError("cache", cfg.CacheFile, "encode manifest", err)
	}
	return w.Write(gen.File{Path: cfg.CacheFile, Content: b})
}
