// Package nest renders declarations as NestJS TypeScript classes decorated for
// @nestjs/graphql, @nestjs/swagger, class-validator and class-transformer.
package nest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zongruxie4/amplication/compiler/gen/dto"
	"github.com/zongruxie4/amplication/compiler/gen/render"
)

// Dialect is the NestJS dialect. It holds no state and can be shared.
type Dialect struct {
	export bool
}

// Option configures the dialect.
type Option func(*Dialect)

// WithExport exports every rendered declaration.
func WithExport() Option {
	return func(d *Dialect) { d.export = true }
}

// New returns a NestJS dialect.
func New(opts ...Option) *Dialect {
	d := &Dialect{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ render.Dialect = (*Dialect)(nil)

// Spaced implements render.Spacer.
func (*Dialect) Spaced() bool { return true }

// Annotation renders a decorator.
func (d *Dialect) Annotation(c *render.Context, a dto.Annotation) {
	switch {
	case c.Operation != nil:
		d.access(c, a)
	case c.Property == nil:
		d.declare(c, a)
	default:
		d.decorate(c, c.Property, a)
	}
}

// declare renders the class decorator of a declaration.
func (d *Dialect) declare(c *render.Context, a dto.Annotation) {
	if a.Kind != dto.Exposure {
		return
	}
	switch c.Decl.Kind {
	case dto.KindArgs:
		c.Line("@ArgsType()")
	case dto.KindInput:
		c.Line("@InputType()")
	case dto.KindObject:
		c.Line("@ObjectType()")
	case dto.KindResolver:
		c.Linef("@graphql.Resolver(() => %s)", a.Type.Ident())
	}
}

func (d *Dialect) decorate(c *render.Context, p *dto.Property, a dto.Annotation) {
	switch a.Kind {
	case dto.Documentation:
		kvs := []kv{{"required", strconv.FormatBool(a.Required)}}
		if a.Type.Enum {
			kvs = append(kvs, kv{"enum", a.Type.Name})
		} else {
			kvs = append(kvs, kv{"type", docType(a.Type)})
		}
		if a.Type.List {
			kvs = append(kvs, kv{"isArray", "true"})
		}
		c.Linef("@ApiProperty(%s)", object(kvs...))
	case dto.Validation:
		var args []string
		if a.Check == dto.CheckEnum {
			args = append(args, a.Type.Name)
		}
		if a.Each {
			args = append(args, object(kv{"each", "true"}))
		}
		c.Linef("@%s(%s)", validator(a.Check), strings.Join(args, ", "))
	case dto.Transform:
		c.Linef("@Type(() => %s)", transformType(a.Type))
	case dto.Optional:
		c.Line("@IsOptional()")
	case dto.Exposure:
		c.Linef("@Field(() => %s, %s)", graphQLType(a.Type), object(kv{"nullable", strconv.FormatBool(a.Nullable)}))
	}
}

// access renders the access decorator of a resolver method.
func (d *Dialect) access(c *render.Context, a dto.Annotation) {
	if a.Kind != dto.Access {
		return
	}
	switch a.Rule {
	case dto.RulePublic:
		c.Line("@Public()")
	case dto.RuleRoles:
		roles := make([]string, len(a.Roles))
		for i, r := range a.Roles {
			roles[i] = strconv.Quote(r)
		}
		c.Linef("@Roles(%s)", strings.Join(roles, ", "))
	default:
		c.Linef("@nestAccessControl.UseRoles(%s)", object(
			kv{"resource", strconv.Quote(resource(c.Decl))},
			kv{"action", strconv.Quote(permission(a))},
			kv{"possession", strconv.Quote("any")},
		))
	}
}

// Begin renders the class header.
func (d *Dialect) Begin(c *render.Context) {
	keyword := "class"
	if c.Decl.Kind == dto.KindEnum {
		keyword = "enum"
	}
	if d.export {
		keyword = "export " + keyword
	}
	c.Linef("%s %s {", keyword, c.Decl.Name)
	c.Indent()
	if c.Decl.Kind == dto.KindResolver {
		c.Linef("constructor(protected readonly service: %sService) {}", resource(c.Decl))
		c.Blank()
	}
}

// Property renders a class property.
func (d *Dialect) Property(c *render.Context, p *dto.Property) {
	mark := "?"
	if p.Required {
		mark = "!"
	}
	typ := tsType(c.Decl, p.Type)
	if p.Nullable {
		typ += " | null"
	}
	c.Linef("%s%s: %s;", p.Name, mark, typ)
}

// Value renders an enum member.
func (d *Dialect) Value(c *render.Context, v dto.Value) {
	c.Linef("%s = %s,", v.Name, strconv.Quote(v.Value))
}

// Operation renders a resolver method delegating to the entity service.
func (d *Dialect) Operation(c *render.Context, op *dto.Operation) {
	decorator := "Mutation"
	if op.Op.IsQuery() {
		decorator = "Query"
	}
	if op.Nullable {
		c.Linef("@graphql.%s(() => %s, %s)", decorator, graphQLType(op.Returns), object(kv{"nullable", "true"}))
	} else {
		c.Linef("@graphql.%s(() => %s)", decorator, graphQLType(op.Returns))
	}
	result := op.Returns.Ident()
	switch {
	case op.Returns.List:
		result += "[]"
	case op.Nullable:
		result += " | null"
	}
	c.Linef("async %s(", op.Name)
	c.Indent()
	c.Linef("@graphql.Args() args: %s", op.Args)
	c.Dedent()
	c.Linef("): Promise<%s> {", result)
	c.Indent()
	if op.Op == dto.OpMeta {
		c.Linef("return %s;", object(kv{"count", fmt.Sprintf("await this.service.%s(args)", op.Op.Method())}))
	} else {
		c.Linef("return this.service.%s(args);", op.Op.Method())
	}
	c.Dedent()
	c.Line("}")
}

// End closes the class. Enums are registered with the GraphQL schema.
func (d *Dialect) End(c *render.Context) {
	c.Dedent()
	c.Line("}")
	if c.Decl.Kind == dto.KindEnum {
		c.Blank()
		c.Linef("registerEnumType(%s, %s);", c.Decl.Name, object(kv{"name", strconv.Quote(c.Decl.Name)}))
	}
}

type kv struct{ k, v string }

// object renders an object literal. A single entry stays on one line.
func object(kvs ...kv) string {
	if len(kvs) == 1 {
		return fmt.Sprintf("{ %s: %s }", kvs[0].k, kvs[0].v)
	}
	var b strings.Builder
	b.WriteString("{\n")
	for _, e := range kvs {
		fmt.Fprintf(&b, "  %s: %s,\n", e.k, e.v)
	}
	b.WriteString("}")
	return b.String()
}

func docType(r dto.TypeRef) string {
	switch r.Scalar {
	case dto.ScalarNone:
		return "() => " + r.Name
	case dto.ScalarInt, dto.ScalarFloat:
		return "Number"
	case dto.ScalarBoolean:
		return "Boolean"
	case dto.ScalarDateTime:
		return "Date"
	case dto.ScalarJSON:
		return "Object"
	}
	return "String"
}

func transformType(r dto.TypeRef) string {
	if r.Scalar == dto.ScalarDateTime {
		return "Date"
	}
	return r.Ident()
}

func graphQLType(r dto.TypeRef) string {
	var name string
	switch r.Scalar {
	case dto.ScalarNone:
		name = r.Name
	case dto.ScalarInt:
		name = "Int"
	case dto.ScalarFloat:
		name = "Float"
	case dto.ScalarBoolean:
		name = "Boolean"
	case dto.ScalarDateTime:
		name = "Date"
	case dto.ScalarJSON:
		name = "GraphQLJSON"
	default:
		name = "String"
	}
	if r.List {
		return "[" + name + "]"
	}
	return name
}

func tsType(d *dto.Declaration, r dto.TypeRef) string {
	var name string
	switch r.Scalar {
	case dto.ScalarNone:
		name = r.Name
	case dto.ScalarInt, dto.ScalarFloat:
		name = "number"
	case dto.ScalarBoolean:
		name = "boolean"
	case dto.ScalarDateTime:
		name = "Date"
	case dto.ScalarJSON:
		name = jsonType(d)
	default:
		name = "string"
	}
	if r.List {
		return "Array<" + name + ">"
	}
	return name
}

func jsonType(d *dto.Declaration) string {
	if d.Kind == dto.KindObject {
		return "JsonValue"
	}
	return "InputJsonValue"
}

var validators = map[dto.Check]string{
	dto.CheckNested:  "ValidateNested",
	dto.CheckString:  "IsString",
	dto.CheckInt:     "IsInt",
	dto.CheckNumber:  "IsNumber",
	dto.CheckBoolean: "IsBoolean",
	dto.CheckDate:    "IsDate",
	dto.CheckJSON:    "IsJSONValue",
	dto.CheckEnum:    "IsEnum",
}

func validator(c dto.Check) string { return validators[c] }

// resource returns the entity name of a resolver.
func resource(d *dto.Declaration) string {
	for _, a := range d.Annotations {
		if a.Kind == dto.Exposure && a.Type.Name != "" {
			return a.Type.Name
		}
	}
	return strings.TrimSuffix(d.Name, "Resolver")
}

// permission returns the access-control action of an annotation.
func permission(a dto.Annotation) string {
	switch a.Action {
	case "create", "update", "delete":
		return string(a.Action)
	}
	return "read"
}
