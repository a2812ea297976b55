package dto

import (
	"slices"

	"github.com/zongruxie4/amplication/compiler/gen"
	"github.com/zongruxie4/amplication/schema"
)

// Option configures the synthesis of a set.
type Option func(*options)

type options struct {
	meta bool
}

// WithMeta adds the count query (_<plural>Meta) to the resolver.
func WithMeta() Option {
	return func(o *options) { o.meta = true }
}

// Resolver builds the query and mutation bindings of t from the object and
// arguments of s. Each operation carries the access annotation derived from
// the permission of its action; operations whose action is disabled are left
// out.
func Resolver(t *gen.Type, s *Set, opts ...Option) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	if s == nil || s.Object == nil {
		return nil, gen.NewMissingDependencyError(t.Name, "Resolver", "Object")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var (
		object   = Ref(s.Object.Name)
		singular = gen.Camel(t.Name)
		plural   = gen.Camel(t.Plural)
		ops      = []struct {
			op       Op
			name     string
			args     *Declaration
			dep      string
			returns  TypeRef
			nullable bool
		}{
			{OpMeta, "_" + plural + "Meta", s.FindMany, "FindManyArgs", Ref(MetaQueryPayload), false},
			{OpFindMany, plural, s.FindMany, "FindManyArgs", object.AsList(), false},
			{OpFindOne, singular, s.FindOne, "FindOneArgs", object, true},
			{OpCreate, "create" + t.Name, s.CreateArgs, "CreateArgs", object, false},
			{OpUpdate, "update" + t.Name, s.UpdateArgs, "UpdateArgs", object, true},
			{OpDelete, "delete" + t.Name, s.DeleteArgs, "DeleteArgs", object, true},
		}
	)
	d := &Declaration{
		Name:        ResolverName(t.Name),
		Kind:        KindResolver,
		Annotations: []Annotation{{Kind: Exposure, Type: object}},
	}
	for _, op := range ops {
		if op.op == OpMeta && !o.meta {
			continue
		}
		access, ok := accessOf(t.Permission(op.op.Action()))
		if !ok {
			continue
		}
		if op.args == nil {
			return nil, gen.NewMissingDependencyError(t.Name, "Resolver", op.dep)
		}
		d.Operations = append(d.Operations, &Operation{
			Name:        op.name,
			Op:          op.op,
			Args:        op.args.Name,
			Returns:     op.returns,
			Nullable:    op.nullable,
			Annotations: []Annotation{access},
		})
	}
	return d, nil
}

// accessOf returns the access annotation of a permission, or false if the
// action is disabled.
func accessOf(p *schema.Permission) (Annotation, bool) {
	a := Annotation{Kind: Access, Action: p.Action}
	switch p.Type {
	case schema.Disabled:
		return a, false
	case schema.Public:
		a.Rule = RulePublic
	case schema.Granular:
		a.Rule = RuleRoles
		a.Roles = slices.Clone(p.Roles)
	default:
		a.Rule = RuleAnyRole
	}
	return a, true
}
