package dto

import (
	"fmt"

	"github.com/zongruxie4/amplication/compiler/gen"
)

// WhereUniqueInput synthesizes the input that identifies exactly one instance
// of t: the required identifier property followed by one optional, nullable
// property per other unique field, in field declaration order. Unique lookups
// are identified by the unique input of their target.
func WhereUniqueInput(t *gen.Type) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	d := newInput(WhereUniqueInputName(t.Name))
	for _, f := range t.Fields {
		switch {
		case f.IsID():
			d.Properties = append(d.Properties, NewProperty(f.Name, scalarOf(f), true, false))
		case f.Unique && f.IsLookup():
			d.Properties = append(d.Properties, NewProperty(f.Name, Ref(WhereUniqueInputName(f.TargetName())), false, true))
		case f.Unique:
			d.Properties = append(d.Properties, NewProperty(f.Name, scalarOf(f), false, true))
		}
	}
	return d, nil
}

// WhereInput synthesizes the filter input of t. Every searchable field is an
// optional property typed with the shared filter of its scalar kind.
func WhereInput(t *gen.Type) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	d := newInput(WhereInputName(t.Name))
	for _, f := range t.Fields {
		if !f.Searchable {
			continue
		}
		var ref TypeRef
		switch {
		case f.IsToOne():
			ref = Ref(WhereUniqueInputName(f.TargetName()))
		case f.IsToMany():
			ref = Ref(ListRelationFilterName(f.TargetName()))
		case f.IsEnum():
			ref = scalarOf(f)
		default:
			ref = filterOf(f)
		}
		d.Properties = append(d.Properties, NewProperty(f.Name, ref, false, false))
	}
	return d, nil
}

// CreateInput synthesizes the input of the create mutation. Fields that are
// not nullable are required. To-many lookups are connected by their nested
// create input.
func CreateInput(t *gen.Type) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	d := newInput(CreateInputName(t.Name))
	for _, f := range t.EditableFields() {
		switch {
		case f.IsToMany():
			d.Properties = append(d.Properties, NewProperty(f.Name, Ref(CreateNestedManyInputName(f.TargetName())), false, false))
		case f.IsToOne():
			d.Properties = append(d.Properties, NewProperty(f.Name, Ref(WhereUniqueInputName(f.TargetName())), !f.Nullable, f.Nullable))
		default:
			d.Properties = append(d.Properties, NewProperty(f.Name, scalarOf(f), !f.Nullable, f.Nullable))
		}
	}
	return d, nil
}

// UpdateInput synthesizes the input of the update mutation. It has the
// fields of the create input, all optional.
func UpdateInput(t *gen.Type) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	d := newInput(UpdateInputName(t.Name))
	for _, f := range t.EditableFields() {
		switch {
		case f.IsToMany():
			d.Properties = append(d.Properties, NewProperty(f.Name, Ref(UpdateManyInputName(f.TargetName())), false, false))
		case f.IsToOne():
			d.Properties = append(d.Properties, NewProperty(f.Name, Ref(WhereUniqueInputName(f.TargetName())), false, f.Nullable))
		default:
			d.Properties = append(d.Properties, NewProperty(f.Name, scalarOf(f), false, f.Nullable))
		}
	}
	return d, nil
}

// OrderByInput synthesizes the sort input of t.
func OrderByInput(t *gen.Type) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	d := newInput(OrderByInputName(t.Name))
	for _, f := range t.Fields {
		if f.Sortable() {
			d.Properties = append(d.Properties, NewProperty(f.Name, EnumRef(SortOrder), false, false))
		}
	}
	return d, nil
}

// Object synthesizes the output type of t. Password fields are not exposed.
func Object(t *gen.Type) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	d := &Declaration{
		Name:        t.Name,
		Kind:        KindObject,
		Description: t.Description,
		Annotations: []Annotation{{Kind: Exposure}},
	}
	for _, f := range t.Fields {
		var p *Property
		switch {
		case !f.Exposed():
			continue
		case f.IsToMany():
			p = NewProperty(f.Name, Ref(f.TargetName()).AsList(), false, false)
		case f.IsToOne():
			p = NewProperty(f.Name, Ref(f.TargetName()), !f.Nullable, f.Nullable)
		default:
			p = NewProperty(f.Name, scalarOf(f), !f.Nullable, f.Nullable)
		}
		p.Description = f.Description
		d.Properties = append(d.Properties, p)
	}
	return d, nil
}

// Enums synthesizes one enum per option-set field of t.
func Enums(t *gen.Type) ([]*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	var enums []*Declaration
	for _, f := range t.EnumFields() {
		d := &Declaration{
			Name:        f.EnumName(),
			Kind:        KindEnum,
			Description: f.Description,
		}
		for _, o := range f.Options {
			d.Values = append(d.Values, Value{
				Name:  gen.Pascal(o.Value),
				Value: o.Value,
				Label: o.Label,
			})
		}
		enums = append(enums, d)
	}
	return enums, nil
}

// ListRelationFilter synthesizes the filter of to-many relations targeting t.
func ListRelationFilter(t *gen.Type) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	where := Ref(WhereInputName(t.Name))
	d := newInput(ListRelationFilterName(t.Name))
	for _, name := range []string{"every", "some", "none"} {
		d.Properties = append(d.Properties, NewProperty(name, where, false, false))
	}
	return d, nil
}

// CreateNestedManyInput synthesizes the input that connects instances of t
// to a new instance of a referring type.
func CreateNestedManyInput(t *gen.Type) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	d := newInput(CreateNestedManyInputName(t.Name))
	d.Properties = append(d.Properties, NewProperty("connect", Ref(WhereUniqueInputName(t.Name)).AsList(), false, false))
	return d, nil
}

// UpdateManyInput synthesizes the input that changes the instances of t
// related to an existing instance of a referring type.
func UpdateManyInput(t *gen.Type) (*Declaration, error) {
	if err := check(t); err != nil {
		return nil, err
	}
	unique := Ref(WhereUniqueInputName(t.Name)).AsList()
	d := newInput(UpdateManyInputName(t.Name))
	for _, name := range []string{"connect", "disconnect", "set"} {
		d.Properties = append(d.Properties, NewProperty(name, unique, false, false))
	}
	return d, nil
}

func newInput(name string) *Declaration {
	return &Declaration{
		Name:        name,
		Kind:        KindInput,
		Annotations: []Annotation{{Kind: Exposure}},
	}
}

// check rejects types that did not pass ingestion.
func check(t *gen.Type) error {
	switch {
	case t == nil:
		return gen.NewSchemaError("", "", "missing entity type", nil)
	case len(t.Fields) == 0:
		return gen.NewSchemaError(t.Name, "", "entity has no fields", nil)
	case t.ID == nil:
		return gen.NewSchemaError(t.Name, "", "missing identifier field", nil)
	}
	// Relations declared by entity id are only named once a graph resolved them.
	for _, f := range t.Fields {
		if f.Relation != nil && f.Relation.Type == nil && gen.ValidSchemaName(f.Relation.Target) != nil {
			return gen.NewSchemaError(t.Name, f.Name, fmt.Sprintf("relation target %q is not resolved", f.Relation.Target), nil)
		}
	}
	return nil
}
