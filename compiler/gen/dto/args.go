package dto

import (
	"github.com/zongruxie4/amplication/compiler/gen"
)

// FindOneArgs wraps the unique input of t into the arguments of the find-one
// query: a single required "where" property documented, validated as a nested
// input and exposed as non-nullable, in that order.
//
// It fails with a MissingDependencyError if whereUnique was not synthesized.
func FindOneArgs(t *gen.Type, whereUnique *Declaration) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	if whereUnique == nil {
		return nil, gen.NewMissingDependencyError(t.Name, "FindOneArgs", "WhereUniqueInput")
	}
	return newArgs(FindOneArgsName(t.Name),
		NewProperty("where", Ref(whereUnique.Name), true, false),
	), nil
}

// FindManyArgs builds the arguments of the list query: an optional filter,
// an optional list of sort inputs and the pagination window.
func FindManyArgs(t *gen.Type, where, orderBy *Declaration) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	switch {
	case where == nil:
		return nil, gen.NewMissingDependencyError(t.Name, "FindManyArgs", "WhereInput")
	case orderBy == nil:
		return nil, gen.NewMissingDependencyError(t.Name, "FindManyArgs", "OrderByInput")
	}
	return newArgs(FindManyArgsName(t.Name),
		NewProperty("where", Ref(where.Name), false, false),
		NewProperty("orderBy", Ref(orderBy.Name).AsList(), false, false),
		NewProperty("skip", ScalarRef(ScalarInt), false, false),
		NewProperty("take", ScalarRef(ScalarInt), false, false),
	), nil
}

// CreateArgs builds the arguments of the create mutation.
func CreateArgs(t *gen.Type, create *Declaration) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	if create == nil {
		return nil, gen.NewMissingDependencyError(t.Name, "CreateArgs", "CreateInput")
	}
	return newArgs(CreateArgsName(t.Name),
		NewProperty("data", Ref(create.Name), true, false),
	), nil
}

// UpdateArgs builds the arguments of the update mutation.
func UpdateArgs(t *gen.Type, whereUnique, update *Declaration) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	switch {
	case whereUnique == nil:
		return nil, gen.NewMissingDependencyError(t.Name, "UpdateArgs", "WhereUniqueInput")
	case update == nil:
		return nil, gen.NewMissingDependencyError(t.Name, "UpdateArgs", "UpdateInput")
	}
	return newArgs(UpdateArgsName(t.Name),
		NewProperty("where", Ref(whereUnique.Name), true, false),
		NewProperty("data", Ref(update.Name), true, false),
	), nil
}

// DeleteArgs builds the arguments of the delete mutation.
func DeleteArgs(t *gen.Type, whereUnique *Declaration) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	if whereUnique == nil {
		return nil, gen.NewMissingDependencyError(t.Name, "DeleteArgs", "WhereUniqueInput")
	}
	return newArgs(DeleteArgsName(t.Name),
		NewProperty("where", Ref(whereUnique.Name), true, false),
	), nil
}

func newArgs(name string, props ...*Property) *Declaration {
	return &Declaration{
		Name:        name,
		Kind:        KindArgs,
		Annotations: []Annotation{{Kind: Exposure}},
		Properties:  props,
	}
}
