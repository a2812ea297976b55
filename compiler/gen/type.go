package gen

import (
	"fmt"

	"github.com/zongruxie4/amplication/schema"
)

// The following types and their exported methods are used by the DTO
// synthesizer to derive the declarations of an entity.
type (
	// Type represents one entity of the model, normalized and validated.
	Type struct {
		def *schema.Entity
		// Name holds the type name, e.g. "ExampleEntity".
		Name string
		// DisplayName holds the human readable name.
		DisplayName string
		// Plural holds the plural type name, e.g. "ExampleEntities".
		Plural string
		// PluralDisplayName holds the plural human readable name.
		PluralDisplayName string
		// Description of the entity.
		Description string
		// ID holds the identifier field of this type.
		ID *Field
		// Fields holds all fields of this type in declaration order,
		// the identifier included.
		Fields []*Field
		fields map[string]*Field
		// referrers holds the to-many relation fields of other types
		// that point to this type. Set by the graph.
		referrers []*Field
	}

	// Field holds the normalized information of an entity field.
	Field struct {
		def *schema.Field
		typ *Type
		// Name is the property name of this field.
		Name string
		// DisplayName is the human readable name.
		DisplayName string
		// Description of the field.
		Description string
		// DataType holds the designer type tag.
		DataType schema.DataType
		// Nullable indicates that the field may hold no value.
		Nullable bool
		// Unique indicates that the field identifies a single instance.
		Unique bool
		// Searchable indicates that the field is part of the filter input.
		Searchable bool
		// Relation holds the relation info of lookup fields.
		Relation *Relation
		// Options holds the allowed values of option-set fields.
		Options []schema.Option
	}

	// Relation of a lookup field to another type.
	Relation struct {
		// Target is the name (or id) of the related entity as declared.
		Target string
		// Type holds the related type once resolved by the graph.
		Type *Type
		// Many indicates a to-many relation.
		Many bool
		// Inverse holds the name of the back-reference field on the related type.
		Inverse string
	}
)

// NewType ingests the given entity definition. It fails with a SchemaError
// if the definition is structurally invalid.
func NewType(e *schema.Entity) (*Type, error) {
	if e == nil {
		return nil, NewSchemaError("", "", "missing entity definition", nil)
	}
	if err := ValidSchemaName(e.Name); err != nil {
		return nil, NewSchemaError(e.Name, "", "invalid entity name", err)
	}
	if len(e.Fields) == 0 {
		return nil, NewSchemaError(e.Name, "", "entity has no fields", nil)
	}
	typ := &Type{
		def:               e,
		Name:              e.Name,
		DisplayName:       e.DisplayName,
		Plural:            e.PluralName,
		PluralDisplayName: e.PluralDisplayName,
		Description:       e.Description,
		Fields:            make([]*Field, 0, len(e.Fields)),
		fields:            make(map[string]*Field, len(e.Fields)),
	}
	if typ.DisplayName == "" {
		typ.DisplayName = Humanize(typ.Name)
	}
	if typ.Plural == "" {
		typ.Plural = Plural(typ.Name)
	}
	if typ.PluralDisplayName == "" {
		typ.PluralDisplayName = Humanize(typ.Plural)
	}
	if typ.Plural == typ.Name {
		return nil, NewSchemaError(e.Name, "", "plural name must differ from the entity name", nil)
	}
	for _, f := range e.Fields {
		if f == nil {
			return nil, NewSchemaError(e.Name, "", "missing field definition", nil)
		}
		tf, err := typ.newField(f)
		if err != nil {
			return nil, err
		}
		if tf.IsID() {
			if typ.ID != nil {
				return nil, NewSchemaError(e.Name, f.Name, fmt.Sprintf("identifier field redeclared (first declared as %q)", typ.ID.Name), nil)
			}
			typ.ID = tf
		}
		typ.Fields = append(typ.Fields, tf)
		typ.fields[tf.Name] = tf
	}
	if typ.ID == nil {
		return nil, NewSchemaError(e.Name, "", "missing identifier field", nil)
	}
	if err := typ.checkUniqueRelations(); err != nil {
		return nil, err
	}
	return typ, nil
}

// newField creates and checks a single field of the type.
func (t *Type) newField(f *schema.Field) (*Field, error) {
	if err := validFieldName(f.Name); err != nil {
		return nil, NewSchemaError(t.Name, f.Name, "invalid field name", err)
	}
	tf := &Field{
		def:         f,
		typ:         t,
		Name:        f.Name,
		DisplayName: f.DisplayName,
		Description: f.Description,
		DataType:    f.DataType,
		Nullable:    f.Nullable,
		Unique:      f.Unique,
		Options:     f.Options,
	}
	if tf.DisplayName == "" {
		tf.DisplayName = Humanize(tf.Name)
	}
	if err := t.checkField(tf, f); err != nil {
		return nil, NewSchemaError(t.Name, f.Name, err.Error(), nil)
	}
	if r := f.Relation; r != nil {
		tf.Relation = &Relation{
			Target:  r.Target,
			Many:    r.IsMany(),
			Inverse: r.Inverse,
		}
	}
	tf.Searchable = tf.filterable()
	if f.Searchable != nil {
		tf.Searchable = *f.Searchable && tf.filterable()
	}
	return tf, nil
}

// checkField checks the schema field.
func (t *Type) checkField(tf *Field, f *schema.Field) (err error) {
	switch {
	case t.fields[f.Name] != nil:
		err = fmt.Errorf("field %q redeclared for type %q", f.Name, t.Name)
	case !f.DataType.Valid():
		err = fmt.Errorf("unknown data type %q", f.DataType)
	case f.DataType == schema.TypeID && f.Nullable:
		err = fmt.Errorf("identifier field cannot be nullable")
	case f.DataType == schema.TypeLookup && f.Relation == nil:
		err = fmt.Errorf("lookup field requires relation metadata")
	case f.DataType != schema.TypeLookup && f.Relation != nil:
		err = fmt.Errorf("relation metadata on a %s field", f.DataType)
	case f.Relation != nil && f.Relation.Target == "":
		err = fmt.Errorf("relation target cannot be empty")
	case f.Relation != nil && !f.Relation.Cardinality.Valid():
		err = fmt.Errorf("unknown relation cardinality %q", f.Relation.Cardinality)
	case f.Relation.IsMany() && f.Unique:
		err = fmt.Errorf("to-many relation cannot be unique")
	case f.DataType.IsOptionSet():
		err = checkOptions(f.Options)
	case len(f.Options) > 0:
		err = fmt.Errorf("options on a %s field", f.DataType)
	}
	return err
}

func checkOptions(options []schema.Option) error {
	if len(options) == 0 {
		return fmt.Errorf("option set requires at least one option")
	}
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		if o.Value == "" {
			return fmt.Errorf("option value cannot be empty")
		}
		key := Pascal(o.Value)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate option value %q", o.Value)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// checkUniqueRelations rejects unique lookups whose relation metadata
// conflicts with another unique lookup of the same type. Before the graph
// resolves the relations, targets compare as declared.
func (t *Type) checkUniqueRelations() error {
	targets := make(map[string]string)
	for _, f := range t.Fields {
		if !f.Unique || f.Relation == nil {
			continue
		}
		target := f.TargetName()
		if prev, ok := targets[target]; ok {
			return NewSchemaError(t.Name, f.Name, fmt.Sprintf("unique relation to %q conflicts with unique field %q", target, prev), nil)
		}
		targets[target] = f.Name
	}
	return nil
}

// =============================================================================
// Type methods
// =============================================================================

// Def returns the entity definition the type was ingested from.
func (t Type) Def() *schema.Entity { return t.def }

// Field returns the field with the given name.
func (t Type) Field(name string) (*Field, bool) {
	f, ok := t.fields[name]
	return f, ok
}

// UniqueFields returns the unique fields other than the identifier,
// in declaration order.
func (t Type) UniqueFields() []*Field {
	var fields []*Field
	for _, f := range t.Fields {
		if f.Unique && !f.IsID() {
			fields = append(fields, f)
		}
	}
	return fields
}

// EditableFields returns the fields that can be set through create and
// update inputs, in declaration order.
func (t Type) EditableFields() []*Field {
	fields := make([]*Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		if !f.DataType.System() {
			fields = append(fields, f)
		}
	}
	return fields
}

// EnumFields returns the option-set fields of the type.
func (t Type) EnumFields() []*Field {
	var fields []*Field
	for _, f := range t.Fields {
		if f.IsEnum() {
			fields = append(fields, f)
		}
	}
	return fields
}

// RelatedTypes returns the resolved types this type points to, without duplicates.
func (t Type) RelatedTypes() []*Type {
	seen := make(map[string]struct{})
	var related []*Type
	for _, f := range t.Fields {
		if f.Relation == nil || f.Relation.Type == nil {
			continue
		}
		if _, ok := seen[f.Relation.Type.Name]; !ok {
			seen[f.Relation.Type.Name] = struct{}{}
			related = append(related, f.Relation.Type)
		}
	}
	return related
}

// Referrers returns the to-many relation fields of other types that point to
// this type, in graph order.
func (t Type) Referrers() []*Field { return t.referrers }

// HasManyReferrers reports if a to-many relation points to this type. Such
// types need the nested relation inputs and the list relation filter.
func (t Type) HasManyReferrers() bool { return len(t.referrers) > 0 }

// Permission returns the permission rule of the given action.
func (t Type) Permission(action schema.Action) *schema.Permission {
	if t.def == nil {
		return &schema.Permission{Action: action, Type: schema.AllRoles}
	}
	return t.def.Permission(action)
}

// =============================================================================
// Field methods
// =============================================================================

// Type returns the type the field belongs to.
func (f Field) Type() *Type { return f.typ }

// IsID reports if the field is the identifier field.
func (f Field) IsID() bool { return f.DataType == schema.TypeID }

// IsLookup reports if the field is a relation field.
func (f Field) IsLookup() bool { return f.Relation != nil }

// IsToOne reports if the field is a to-one relation.
func (f Field) IsToOne() bool { return f.Relation != nil && !f.Relation.Many }

// IsToMany reports if the field is a to-many relation.
func (f Field) IsToMany() bool { return f.Relation != nil && f.Relation.Many }

// IsEnum reports if the field values are restricted to its options.
func (f Field) IsEnum() bool { return f.DataType.IsOptionSet() }

// IsList reports if the field holds a list of scalar values.
func (f Field) IsList() bool { return f.DataType == schema.TypeMultiSelectOptionSet }

// EnumName returns the name of the enum declaration of an option-set field.
func (f Field) EnumName() string {
	var owner string
	if f.typ != nil {
		owner = f.typ.Name
	}
	return "Enum" + owner + Pascal(f.Name)
}

// TargetName returns the type name the relation points to. Until the
// relation is resolved by NewGraph, it is the target as declared, which
// may be an entity id.
func (f Field) TargetName() string {
	switch {
	case f.Relation == nil:
		return ""
	case f.Relation.Type != nil:
		return f.Relation.Type.Name
	default:
		return f.Relation.Target
	}
}

// Exposed reports if the field is part of the entity output type.
func (f Field) Exposed() bool { return f.DataType != schema.TypePassword }

// Sortable reports if the entity list can be ordered by this field.
func (f Field) Sortable() bool {
	switch f.DataType {
	case schema.TypeLookup, schema.TypeMultiSelectOptionSet, schema.TypeJSON,
		schema.TypeGeographicLocation, schema.TypeRoles, schema.TypePassword:
		return false
	}
	return true
}

// filterable reports if the data type can be filtered at all.
func (f Field) filterable() bool {
	switch f.DataType {
	case schema.TypePassword, schema.TypeMultiSelectOptionSet, schema.TypeRoles, schema.TypeGeographicLocation:
		return false
	}
	return true
}
