// Package compiler runs the generation pipeline over a set of entities:
// ingestion into a type graph, synthesis of the declarations of every
// entity, and emission of the files of each configured dialect.
//
// Each entity is synthesized and rendered by its own pipeline, in parallel.
// A failing entity is reported and left out of the output; the files of the
// other entities are still produced.
package compiler

import (
	"cmp"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zongruxie4/amplication/compiler/gen"
	"github.com/zongruxie4/amplication/compiler/gen/dto"
	"github.com/zongruxie4/amplication/schema"
)

// Parts of the rendered output of an entity.
const (
	partDTO      = "nest.dto"
	partResolver = "nest.resolver"
	partSDL      = "graphql"
	partGo       = "go"
)

// Report is the outcome of a generation run.
type Report struct {
	// Files holds the assembled files, sorted by path.
	Files []*File
	// Cached lists the entities whose output was reused from the cache.
	Cached []string
	// Failures maps the name of each failed entity to its error.
	Failures map[string]error
}

// File is an assembled output file.
type File struct {
	// Path is relative to the target directory.
	Path string
	// Entity is the name of the entity the file belongs to,
	// empty for shared files.
	Entity  string
	Content []byte
}

// Entity returns the files of the given entity.
func (r *Report) Entity(name string) []*File {
	var files []*File
	for _, f := range r.Files {
		if f.Entity == name {
			files = append(files, f)
		}
	}
	return files
}

// unit is the pipeline of one entity.
type unit struct {
	typ   *gen.Type
	set   *dto.Set
	parts map[string]string
	// cached reports if parts were loaded from the manifest.
	cached      bool
	fingerprint string
	err         error
}

// Build runs the pipeline and assembles the output files without writing
// them. The returned error joins the failures of all entities, and the
// failures of the shared files.
func Build(ctx context.Context, cfg *gen.Config, entities ...*schema.Entity) (*Report, error) {
	r, _, err := build(ctx, cfg, entities)
	return r, err
}

func build(ctx context.Context, cfg *gen.Config, entities []*schema.Entity) (*Report, *Manifest, error) {
	if cfg == nil {
		return nil, nil, gen.NewConfigError("Config", nil, "config cannot be nil")
	}
	log := cfg.Logger
	report := &Report{Failures: make(map[string]error)}
	var errs []error
	g, _ := gen.NewGraph(cfg, entities...)
	for _, err := range g.Errors {
		report.Failures[err.Type] = err
		errs = append(errs, err)
		log.Warn("entity rejected", "entity", err.Type, "error", err)
	}

	manifest := NewManifest()
	if cfg.Enabled(gen.FeatureCache) {
		m, err := LoadManifest(filepath.Join(cfg.Target, cfg.CacheFile))
		if err != nil {
			log.Warn("ignoring cache manifest", "error", err)
		} else {
			manifest = m
		}
	}

	units := make([]*unit, len(g.Nodes))
	for i, t := range g.Nodes {
		units[i] = &unit{typ: t}
	}
	if err := synthesize(ctx, cfg, units); err != nil {
		return nil, nil, err
	}
	sc := newScope(units)
	if err := renderAll(ctx, cfg, sc, units, manifest); err != nil {
		return nil, nil, err
	}

	next := NewManifest()
	for _, u := range units {
		if u.err != nil {
			report.Failures[u.typ.Name] = u.err
			errs = append(errs, u.err)
			log.Warn("entity failed", "entity", u.typ.Name, "error", u.err)
			continue
		}
		if u.cached {
			report.Cached = append(report.Cached, u.typ.Name)
		}
		next.Store(u.typ.Name, u.fingerprint, u.parts)
		report.Files = append(report.Files, entityFiles(cfg, u)...)
	}
	shared, err := sharedFiles(cfg, sc, units)
	if err != nil {
		errs = append(errs, err)
	}
	report.Files = append(report.Files, shared...)
	slices.SortFunc(report.Files, func(a, b *File) int { return cmp.Compare(a.Path, b.Path) })
	log.Info("build finished", "files", len(report.Files), "cached", len(report.Cached), "failed", len(report.Failures))
	return report, next, errors.Join(errs...)
}

// synthesize builds the declarations of all units.
func synthesize(ctx context.Context, cfg *gen.Config, units []*unit) error {
	var opts []dto.Option
	if cfg.Enabled(gen.FeatureMetaQuery) {
		opts = append(opts, dto.WithMeta())
	}
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(cfg.Workers)
	for _, u := range units {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			u.set, u.err = dto.Synthesize(u.typ, opts...)
			if u.err == nil {
				cfg.Logger.Debug("entity synthesized", "entity", u.typ.Name, "declarations", len(u.set.Declarations()))
			}
			return nil
		})
	}
	return errg.Wait()
}

// renderAll renders the parts of all synthesized units. The scope is shared
// by the pipelines and must not be modified while they run.
func renderAll(ctx context.Context, cfg *gen.Config, sc *scope, units []*unit, m *Manifest) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(cfg.Workers)
	for _, u := range units {
		if u.err != nil {
			continue
		}
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			u.err = renderUnit(cfg, sc, u, m)
			return nil
		})
	}
	return errg.Wait()
}

func renderUnit(cfg *gen.Config, sc *scope, u *unit, m *Manifest) error {
	fp, err := fingerprint(cfg, u.set)
	if err != nil {
		return gen.NewGenerationError("cache", "", "fingerprint "+u.typ.Name, err)
	}
	u.fingerprint = fp
	if cfg.Enabled(gen.FeatureCache) && resolvable(u.set, sc) {
		if parts, ok := m.Lookup(u.typ.Name, fp); ok {
			u.parts, u.cached = parts, true
			cfg.Logger.Debug("entity cached", "entity", u.typ.Name)
			return nil
		}
	}
	u.parts = make(map[string]string)
	if cfg.HasDialect(gen.DialectNest) {
		if u.parts[partDTO], err = nestDTO(cfg, sc, u); err != nil {
			return err
		}
		if cfg.Enabled(gen.FeatureResolvers) {
			text, err := nestResolver(cfg, sc, u)
			if err != nil {
				return err
			}
			if text != "" {
				u.parts[partResolver] = text
			}
		}
	}
	if cfg.HasDialect(gen.DialectGraphQL) {
		if u.parts[partSDL], err = sdl(sc, u.set.DTOs()); err != nil {
			return err
		}
	}
	if cfg.HasDialect(gen.DialectGo) {
		decls := u.set.DTOs()
		if cfg.Enabled(gen.FeatureResolvers) {
			decls = u.set.Declarations()
		}
		if u.parts[partGo], err = goFile(cfg, sc, decls, goPath(cfg, u.typ.Name)); err != nil {
			return err
		}
	}
	return nil
}

// resolvable reports if every type referenced by the set is declared.
// Cached output is only valid while the types it refers to exist.
func resolvable(set *dto.Set, s *scope) bool {
	for _, d := range set.Declarations() {
		for _, ref := range d.References() {
			if !s.declared(ref) {
				return false
			}
		}
	}
	return true
}

// fingerprint covers everything the rendered parts depend on.
func fingerprint(cfg *gen.Config, s *dto.Set) (string, error) {
	features := make([]string, 0, len(cfg.Features))
	for _, f := range cfg.Features {
		features = append(features, f.Name)
	}
	slices.Sort(features)
	return Fingerprint(struct {
		Header       string             `json:"header"`
		Package      string             `json:"package"`
		Dialects     []string           `json:"dialects"`
		Features     []string           `json:"features"`
		Declarations []*dto.Declaration `json:"declarations"`
	}{cfg.Header, cfg.Package, cfg.Dialects, features, s.Declarations()})
}

// dir returns the directory of the nest files of an entity.
func dir(entity string) string { return gen.Camel(entity) }

func goPath(cfg *gen.Config, entity string) string {
	return filepath.ToSlash(filepath.Join(cfg.Package, strings.ToLower(entity)+".go"))
}

func entityFiles(cfg *gen.Config, u *unit) []*File {
	var (
		name  = u.typ.Name
		d     = dir(name)
		files []*File
	)
	add := func(part, path string) {
		if text, ok := u.parts[part]; ok {
			files = append(files, &File{Path: path, Entity: name, Content: []byte(text)})
		}
	}
	add(partDTO, d+"/"+d+".dto.ts")
	add(partResolver, d+"/"+d+".resolver.ts")
	add(partGo, goPath(cfg, name))
	return files
}
