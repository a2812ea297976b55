package dto

import (
	"github.com/zongruxie4/amplication/compiler/gen"
)

// Set holds the declarations synthesized for one entity.
type Set struct {
	Type  *gen.Type
	Enums []*Declaration

	WhereUnique *Declaration
	Where       *Declaration
	OrderBy     *Declaration
	Create      *Declaration
	Update      *Declaration
	Object      *Declaration

	// Relation inputs, set if a to-many relation targets the type.
	ListRelationFilter *Declaration
	CreateNestedMany   *Declaration
	UpdateMany         *Declaration

	FindOne    *Declaration
	FindMany   *Declaration
	CreateArgs *Declaration
	UpdateArgs *Declaration
	DeleteArgs *Declaration

	Resolver *Declaration
}

// Synthesize derives the full declaration family of t. Each stage runs after
// the stages it depends on.
func Synthesize(t *gen.Type, opts ...Option) (*Set, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	s := &Set{Type: t}
	var err error
	if s.Enums, err = Enums(t); err != nil {
		return nil, err
	}
	for _, step := range []struct {
		dst **Declaration
		fn  func(*gen.Type) (*Declaration, error)
	}{
		{&s.WhereUnique, WhereUniqueInput},
		{&s.Where, WhereInput},
		{&s.OrderBy, OrderByInput},
		{&s.Create, CreateInput},
		{&s.Update, UpdateInput},
		{&s.Object, Object},
	} {
		if *step.dst, err = step.fn(t); err != nil {
			return nil, err
		}
	}
	if t.HasManyReferrers() {
		if s.ListRelationFilter, err = ListRelationFilter(t); err != nil {
			return nil, err
		}
		if s.CreateNestedMany, err = CreateNestedManyInput(t); err != nil {
			return nil, err
		}
		if s.UpdateMany, err = UpdateManyInput(t); err != nil {
			return nil, err
		}
	}
	if s.FindOne, err = FindOneArgs(t, s.WhereUnique); err != nil {
		return nil, err
	}
	if s.FindMany, err = FindManyArgs(t, s.Where, s.OrderBy); err != nil {
		return nil, err
	}
	if s.CreateArgs, err = CreateArgs(t, s.Create); err != nil {
		return nil, err
	}
	if s.UpdateArgs, err = UpdateArgs(t, s.WhereUnique, s.Update); err != nil {
		return nil, err
	}
	if s.DeleteArgs, err = DeleteArgs(t, s.WhereUnique); err != nil {
		return nil, err
	}
	if s.Resolver, err = Resolver(t, s, opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Declarations returns the declarations of the set in a fixed order,
// the resolver last.
func (s *Set) Declarations() []*Declaration {
	decls := make([]*Declaration, 0, len(s.Enums)+16)
	decls = append(decls, s.Enums...)
	for _, d := range []*Declaration{
		s.WhereUnique,
		s.Where,
		s.OrderBy,
		s.Create,
		s.Update,
		s.Object,
		s.ListRelationFilter,
		s.CreateNestedMany,
		s.UpdateMany,
		s.FindOne,
		s.FindMany,
		s.CreateArgs,
		s.UpdateArgs,
		s.DeleteArgs,
		s.Resolver,
	} {
		if d != nil {
			decls = append(decls, d)
		}
	}
	return decls
}

// DTOs returns the declarations of the set without the resolver.
func (s *Set) DTOs() []*Declaration {
	decls := s.Declarations()
	if s.Resolver != nil {
		decls = decls[:len(decls)-1]
	}
	return decls
}
