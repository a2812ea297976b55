// Package golang renders declarations as Go source: inputs, arguments and
// objects as structs, enums as string types with constants, and resolvers as
// interfaces. Code is built with jennifer, which formats the output and
// tracks imports.
package golang

import (
	"fmt"
	"strings"

	"github.com/99designs/gqlgen/codegen/templates"
	"github.com/dave/jennifer/jen"

	"github.com/zongruxie4/amplication/compiler/gen/dto"
	"github.com/zongruxie4/amplication/compiler/gen/render"
)

// Dialect is the Go dialect. It collects the rendered statements for File,
// so each generation pipeline uses its own Dialect.
type Dialect struct {
	stmts []*jen.Statement

	// state of the declaration being rendered.
	fields  []jen.Code
	methods []jen.Code
	consts  []jen.Code
	field   field
	docs    []string
}

// field holds the tags collected from the annotations of a property.
type field struct {
	json               string
	required, optional bool
	dive               bool
}

func (f field) tags() map[string]string {
	var v []string
	switch {
	case f.required:
		v = append(v, "required")
	case f.optional:
		v = append(v, "omitempty")
	}
	if f.dive {
		v = append(v, "dive")
	}
	tags := map[string]string{"json": f.json}
	if len(v) > 0 {
		tags["validate"] = strings.Join(v, ",")
	}
	return tags
}

// New returns a Go dialect.
func New() *Dialect { return &Dialect{} }

var _ render.Dialect = (*Dialect)(nil)

// Annotation collects the struct tags of a property and the documentation
// of a resolver method.
func (d *Dialect) Annotation(c *render.Context, a dto.Annotation) {
	switch {
	case c.Operation != nil:
		if a.Kind == dto.Access {
			d.docs = append(d.docs, accessDoc(a))
		}
	case c.Property != nil:
		d.tag(c.Property, a)
	}
}

func (d *Dialect) tag(p *dto.Property, a dto.Annotation) {
	switch a.Kind {
	case dto.Documentation:
		d.field.required = a.Required
	case dto.Optional:
		d.field.optional = true
	case dto.Validation:
		d.field.dive = a.Each || (a.Check == dto.CheckNested && p.Type.List)
	case dto.Exposure:
		d.field.json = p.Name
		if a.Nullable {
			d.field.json += ",omitempty"
		}
	}
}

// Begin resets the state of the declaration.
func (d *Dialect) Begin(*render.Context) {
	d.fields, d.methods, d.consts = nil, nil, nil
	d.field = field{}
	d.docs = nil
}

// Property adds a struct field.
func (d *Dialect) Property(c *render.Context, p *dto.Property) {
	f := d.field
	d.field = field{}
	if f.json == "" {
		f.json = p.Name
	}
	if p.Description != "" {
		d.fields = append(d.fields, jen.Comment(p.Description))
	}
	d.fields = append(d.fields, jen.Id(templates.ToGo(p.Name)).Add(fieldType(p)).Tag(f.tags()))
}

// Value adds an enum constant.
func (d *Dialect) Value(c *render.Context, v dto.Value) {
	d.consts = append(d.consts, jen.Id(c.Decl.Name+templates.ToGo(v.Name)).Id(c.Decl.Name).Op("=").Lit(v.Value))
}

// Operation adds a resolver method.
func (d *Dialect) Operation(c *render.Context, op *dto.Operation) {
	for _, doc := range d.docs {
		d.methods = append(d.methods, jen.Comment(templates.ToGo(op.Name)+" "+doc))
	}
	d.docs = nil
	result := jen.Op("*").Id(op.Returns.Ident())
	if op.Returns.List {
		result = jen.Index().Op("*").Id(op.Returns.Ident())
	}
	d.methods = append(d.methods, jen.Id(templates.ToGo(op.Name)).Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("args").Op("*").Id(op.Args),
	).Params(result, jen.Error()))
}

// End writes the statements of the declaration.
func (d *Dialect) End(c *render.Context) {
	decl := c.Decl
	var stmts []*jen.Statement
	switch decl.Kind {
	case dto.KindEnum:
		stmts = append(stmts,
			doc(decl, "%s is the set of values of an option set.").Type().Id(decl.Name).String(),
			jen.Const().Defs(d.consts...),
		)
	case dto.KindResolver:
		stmts = append(stmts, doc(decl, "%s resolves the queries and mutations of an entity.").Type().Id(decl.Name).Interface(d.methods...))
	default:
		stmts = append(stmts, doc(decl, "%s is a generated "+decl.Kind.String()+" type.").Type().Id(decl.Name).Struct(d.fields...))
	}
	for i, s := range stmts {
		if i > 0 {
			c.Blank()
		}
		fmt.Fprintf(c, "%#v\n", s)
	}
	d.stmts = append(d.stmts, stmts...)
}

// File returns a Go file holding every declaration rendered so far.
func (d *Dialect) File(pkg, header string) *jen.File {
	f := jen.NewFile(pkg)
	if header != "" {
		f.HeaderComment(header)
	}
	for _, s := range d.stmts {
		f.Add(s)
		f.Line()
	}
	return f
}

func doc(d *dto.Declaration, format string) *jen.Statement {
	if d.Description != "" {
		return jen.Comment(d.Description).Line()
	}
	return jen.Commentf(format, d.Name).Line()
}

func fieldType(p *dto.Property) jen.Code {
	elem := scalarType(p.Type)
	if p.Type.List {
		if p.Type.IsNested() {
			return jen.Index().Op("*").Add(elem)
		}
		return jen.Index().Add(elem)
	}
	if p.Type.Scalar == dto.ScalarJSON {
		return elem
	}
	if !p.Required || p.Nullable || p.Type.IsNested() {
		return jen.Op("*").Add(elem)
	}
	return elem
}

func scalarType(r dto.TypeRef) *jen.Statement {
	switch r.Scalar {
	case dto.ScalarNone:
		return jen.Id(r.Name)
	case dto.ScalarInt:
		return jen.Int()
	case dto.ScalarFloat:
		return jen.Float64()
	case dto.ScalarBoolean:
		return jen.Bool()
	case dto.ScalarDateTime:
		return jen.Qual("time", "Time")
	case dto.ScalarJSON:
		return jen.Qual("encoding/json", "RawMessage")
	}
	return jen.String()
}

func accessDoc(a dto.Annotation) string {
	switch a.Rule {
	case dto.RulePublic:
		return "is public."
	case dto.RuleRoles:
		return "requires one of the roles: " + strings.Join(a.Roles, ", ") + "."
	}
	return "requires an authenticated caller."
}
