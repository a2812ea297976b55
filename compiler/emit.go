package compiler

import (
	"bytes"
	"cmp"
	"slices"
	"strings"

	"github.com/zongruxie4/amplication/compiler/gen"
	"github.com/zongruxie4/amplication/compiler/gen/dto"
	"github.com/zongruxie4/amplication/compiler/gen/render"
	"github.com/zongruxie4/amplication/compiler/gen/render/golang"
	"github.com/zongruxie4/amplication/compiler/gen/render/graphql"
	"github.com/zongruxie4/amplication/compiler/gen/render/nest"
)

// Paths of the shared files.
const (
	commonDTO = "common.dto.ts"
	schemaSDL = "schema.graphql"
)

// scope holds the declarations of a run that rendered text may refer to.
type scope struct {
	decls []*dto.Declaration
	// owner maps a declaration name to its entity, empty for the
	// shared declarations.
	owner map[string]string
}

func newScope(units []*unit) *scope {
	s := &scope{owner: make(map[string]string)}
	for _, d := range dto.Common() {
		s.decls = append(s.decls, d)
		s.owner[d.Name] = ""
	}
	for _, u := range units {
		if u.err != nil {
			continue
		}
		for _, d := range u.set.Declarations() {
			s.decls = append(s.decls, d)
			s.owner[d.Name] = u.typ.Name
		}
	}
	return s
}

func (s *scope) declared(name string) bool {
	_, ok := s.owner[name]
	return ok
}

func (s *scope) emitter(d render.Dialect) *render.Emitter {
	return render.New(d, s.decls...)
}

// module returns the import path of the declaration from the nest files
// of the given entity.
func (s *scope) module(from, name string) string {
	owner, ok := s.owner[name]
	switch {
	case !ok && strings.HasSuffix(name, "Service"):
		return "./" + dir(from) + ".service"
	case !ok:
		return ""
	case owner == "":
		return "../" + strings.TrimSuffix(commonDTO, ".ts")
	case owner == from:
		return "./" + dir(from) + ".dto"
	default:
		return "../" + dir(owner) + "/" + dir(owner) + ".dto"
	}
}

func nestDTO(cfg *gen.Config, s *scope, u *unit) (string, error) {
	decls := u.set.DTOs()
	body, err := s.emitter(nest.New(nest.WithExport())).EmitAll(decls...)
	if err != nil {
		return "", err
	}
	lines := nest.Imports(decls, func(name string) string { return s.module(u.typ.Name, name) })
	return tsFile(cfg.Header, lines, body), nil
}

func nestResolver(cfg *gen.Config, s *scope, u *unit) (string, error) {
	if u.set.Resolver == nil || len(u.set.Resolver.Operations) == 0 {
		return "", nil
	}
	decls := []*dto.Declaration{u.set.Resolver}
	body, err := s.emitter(nest.New(nest.WithExport())).EmitAll(decls...)
	if err != nil {
		return "", err
	}
	lines := nest.Imports(decls, func(name string) string { return s.module(u.typ.Name, name) })
	return tsFile(cfg.Header, lines, body), nil
}

func tsFile(header string, imports []string, body string) string {
	var b strings.Builder
	if header != "" {
		b.WriteString("// " + header + "\n")
	}
	if len(imports) > 0 {
		b.WriteString(strings.Join(imports, "\n") + "\n\n")
	}
	b.WriteString(body + "\n")
	return b.String()
}

func sdl(s *scope, decls []*dto.Declaration) (string, error) {
	return s.emitter(graphql.New()).EmitAll(decls...)
}

// goFile renders the declarations as a Go file of the configured package.
func goFile(cfg *gen.Config, s *scope, decls []*dto.Declaration, path string) (string, error) {
	d := golang.New()
	if _, err := s.emitter(d).EmitAll(decls...); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := d.File(cfg.Package, cfg.Header).Render(&buf); err != nil {
		return "", gen.NewGenerationError("assemble", path, "render go file", err)
	}
	out, err := gen.FormatGo(path, buf.Bytes())
	if err != nil {
		return "", gen.NewGenerationError("assemble", path, "format go file", err)
	}
	return string(out), nil
}

// root merges the operations of all resolvers into one declaration,
// queries first. The GraphQL schema holds a single Query and a single
// Mutation type.
func root(units []*unit) *dto.Declaration {
	d := &dto.Declaration{Name: "Root", Kind: dto.KindResolver}
	for _, u := range units {
		if u.err == nil && u.set.Resolver != nil {
			d.Operations = append(d.Operations, u.set.Resolver.Operations...)
		}
	}
	slices.SortStableFunc(d.Operations, func(a, b *dto.Operation) int {
		return cmp.Compare(rank(a), rank(b))
	})
	return d
}

func rank(op *dto.Operation) int {
	if op.Op.IsQuery() {
		return 0
	}
	return 1
}

// sharedFiles assembles the files that hold the declarations of all
// entities: the common nest DTOs, the GraphQL schema and the common Go file.
func sharedFiles(cfg *gen.Config, s *scope, units []*unit) ([]*File, error) {
	var (
		files  []*File
		common = dto.Common()
	)
	if cfg.HasDialect(gen.DialectNest) {
		body, err := s.emitter(nest.New(nest.WithExport())).EmitAll(common...)
		if err != nil {
			return nil, err
		}
		lines := nest.Imports(common, func(string) string { return "" })
		files = append(files, &File{Path: commonDTO, Content: []byte(tsFile(cfg.Header, lines, body))})
	}
	if cfg.HasDialect(gen.DialectGo) {
		path := goPath(cfg, "common")
		text, err := goFile(cfg, s, common, path)
		if err != nil {
			return nil, err
		}
		files = append(files, &File{Path: path, Content: []byte(text)})
	}
	if cfg.HasDialect(gen.DialectGraphQL) {
		f, err := schemaFile(cfg, s, units)
		if err != nil {
			return files, err
		}
		files = append(files, f)
	}
	return files, nil
}

func schemaFile(cfg *gen.Config, s *scope, units []*unit) (*File, error) {
	blocks := []string{graphql.Prelude}
	common, err := sdl(s, dto.Common())
	if err != nil {
		return nil, err
	}
	blocks = append(blocks, common)
	for _, u := range units {
		if u.err == nil && u.parts[partSDL] != "" {
			blocks = append(blocks, u.parts[partSDL])
		}
	}
	ops, err := sdl(s, []*dto.Declaration{root(units)})
	if err != nil {
		return nil, err
	}
	if ops != "" {
		blocks = append(blocks, ops)
	}
	text := strings.Join(blocks, "\n\n") + "\n"
	if cfg.Enabled(gen.FeatureValidateSDL) {
		if err := graphql.Validate(schemaSDL, text); err != nil {
			return nil, gen.NewGenerationError("validate", schemaSDL, "invalid schema", err)
		}
	}
	if cfg.Header != "" {
		text = "# " + cfg.Header + "\n" + text
	}
	return &File{Path: schemaSDL, Content: []byte(text)}, nil
}
