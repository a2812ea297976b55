// Package graphql renders declarations as GraphQL SDL.
//
// Inputs, objects and enums render as type definitions. Arguments
// declarations have no SDL form: they render as the argument list of the
// resolver operations that use them. A resolver renders its queries and
// mutations as the Query and Mutation root types.
package graphql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/zongruxie4/amplication/compiler/gen/dto"
	"github.com/zongruxie4/amplication/compiler/gen/render"
)

// Prelude declares the custom scalars used by the rendered types.
const Prelude = `scalar DateTime
scalar JSON`

// Dialect is the GraphQL SDL dialect. It holds no state and can be shared.
type Dialect struct{}

// New returns a GraphQL SDL dialect.
func New() *Dialect { return &Dialect{} }

var _ render.Dialect = (*Dialect)(nil)

// Annotation is a no-op. Nullability is part of the SDL type.
func (*Dialect) Annotation(*render.Context, dto.Annotation) {}

// Begin renders the description and the header of a type definition.
func (*Dialect) Begin(c *render.Context) {
	var keyword string
	switch c.Decl.Kind {
	case dto.KindInput:
		keyword = "input"
	case dto.KindObject:
		keyword = "type"
	case dto.KindEnum:
		keyword = "enum"
	default:
		return
	}
	if c.Decl.Description != "" {
		c.Line(strconv.Quote(c.Decl.Description))
	}
	c.Linef("%s %s {", keyword, c.Decl.Name)
	c.Indent()
}

// Property renders a field definition.
func (*Dialect) Property(c *render.Context, p *dto.Property) {
	if c.Decl.Kind == dto.KindArgs {
		return
	}
	if p.Description != "" {
		c.Line(strconv.Quote(p.Description))
	}
	c.Linef("%s: %s", p.Name, typeOf(p.Type, p.Required && !p.Nullable))
}

// Value renders an enum value.
func (*Dialect) Value(c *render.Context, v dto.Value) {
	c.Line(v.Name)
}

// Operation renders a field of the Query or Mutation type. Consecutive
// operations of the same kind share the root type.
func (*Dialect) Operation(c *render.Context, op *dto.Operation) {
	ops := c.Decl.Operations
	i := index(ops, op)
	if i == 0 || ops[i-1].Op.IsQuery() != op.Op.IsQuery() {
		if i > 0 {
			c.Dedent()
			c.Line("}")
			c.Blank()
		}
		if op.Op.IsQuery() {
			c.Line("type Query {")
		} else {
			c.Line("type Mutation {")
		}
		c.Indent()
	}
	var args []string
	if d, ok := c.Lookup(op.Args); ok {
		for _, p := range d.Properties {
			args = append(args, fmt.Sprintf("%s: %s", p.Name, typeOf(p.Type, p.Required && !p.Nullable)))
		}
	}
	var params string
	if len(args) > 0 {
		params = "(" + strings.Join(args, ", ") + ")"
	}
	c.Linef("%s%s: %s", op.Name, params, typeOf(op.Returns, !op.Nullable))
}

// End closes the open type definition.
func (*Dialect) End(c *render.Context) {
	switch c.Decl.Kind {
	case dto.KindArgs:
		return
	case dto.KindResolver:
		if len(c.Decl.Operations) == 0 {
			return
		}
	}
	c.Dedent()
	c.Line("}")
}

func index(ops []*dto.Operation, op *dto.Operation) int {
	for i := range ops {
		if ops[i] == op {
			return i
		}
	}
	return -1
}

// typeOf returns the SDL type of a reference. List elements are never null.
func typeOf(r dto.TypeRef, nonNull bool) string {
	typ := r.Ident()
	if r.List {
		typ = "[" + typ + "!]"
	}
	if nonNull {
		typ += "!"
	}
	return typ
}

// Validate parses and validates a complete schema document.
func Validate(name, sdl string) error {
	_, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: sdl})
	if err != nil {
		return fmt.Errorf("graphql: invalid schema %s: %w", name, err)
	}
	return nil
}
