package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zongruxie4/amplication/schema"
)

var (
	idField   = &schema.Field{Name: "id", DataType: schema.TypeID}
	nameField = &schema.Field{Name: "name", DataType: schema.TypeSingleLineText, Nullable: true}

	exampleEntity = &schema.Entity{
		ID:     "EXAMPLE_ENTITY_ID",
		Name:   "ExampleEntity",
		Fields: []*schema.Field{idField, nameField},
	}
)

func TestType(t *testing.T) {
	require := require.New(t)
	typ, err := NewType(exampleEntity)
	require.NoError(err)
	require.Equal("ExampleEntity", typ.Name)
	require.Equal("Example Entity", typ.DisplayName)
	require.Equal("ExampleEntities", typ.Plural)
	require.Equal("Example Entities", typ.PluralDisplayName)
	require.Same(exampleEntity, typ.Def())
	require.NotNil(typ.ID)
	require.Equal("id", typ.ID.Name)
	require.Len(typ.Fields, 2)
	require.Same(typ.ID, typ.Fields[0])
	require.Equal("Name", typ.Fields[1].DisplayName)
	require.True(typ.Fields[1].Searchable)
	require.Empty(typ.UniqueFields())
	require.Len(typ.EditableFields(), 1)
	f, ok := typ.Field("name")
	require.True(ok)
	require.Same(typ, f.Type())

	typ, err = NewType(&schema.Entity{
		Name:              "Person",
		DisplayName:       "Human",
		PluralName:        "People",
		PluralDisplayName: "Humans",
		Fields:            []*schema.Field{idField},
	})
	require.NoError(err)
	require.Equal("Human", typ.DisplayName)
	require.Equal("People", typ.Plural)
	require.Equal("Humans", typ.PluralDisplayName)
}

func TestType_Errors(t *testing.T) {
	tests := []struct {
		name   string
		entity *schema.Entity
		err    string
	}{
		{
			name:   "nil entity",
			entity: nil,
			err:    "dsg: schema error: missing entity definition",
		},
		{
			name:   "zero fields",
			entity: &schema.Entity{Name: "Empty"},
			err:    "dsg: schema error on type Empty: entity has no fields",
		},
		{
			name:   "missing identifier",
			entity: &schema.Entity{Name: "T", Fields: []*schema.Field{nameField}},
			err:    "dsg: schema error on type T: missing identifier field",
		},
		{
			name:   "identifier redeclared",
			entity: &schema.Entity{Name: "T", Fields: []*schema.Field{idField, {Name: "key", DataType: schema.TypeID}}},
			err:    `dsg: schema error on type T field key: identifier field redeclared (first declared as "id")`,
		},
		{
			name:   "nullable identifier",
			entity: &schema.Entity{Name: "T", Fields: []*schema.Field{{Name: "id", DataType: schema.TypeID, Nullable: true}}},
			err:    "dsg: schema error on type T field id: identifier field cannot be nullable",
		},
		{
			name:   "duplicate field",
			entity: &schema.Entity{Name: "T", Fields: []*schema.Field{idField, nameField, nameField}},
			err:    `dsg: schema error on type T field name: field "name" redeclared for type "T"`,
		},
		{
			name:   "empty field name",
			entity: &schema.Entity{Name: "T", Fields: []*schema.Field{idField, {DataType: schema.TypeBoolean}}},
			err:    "dsg: schema error on type T: invalid field name: field name cannot be empty",
		},
		{
			name:   "unknown data type",
			entity: &schema.Entity{Name: "T", Fields: []*schema.Field{idField, {Name: "price", DataType: "Money"}}},
			err:    `dsg: schema error on type T field price: unknown data type "Money"`,
		},
		{
			name:   "lookup without relation",
			entity: &schema.Entity{Name: "T", Fields: []*schema.Field{idField, {Name: "owner", DataType: schema.TypeLookup}}},
			err:    "dsg: schema error on type T field owner: lookup field requires relation metadata",
		},
		{
			name: "relation on scalar",
			entity: &schema.Entity{Name: "T", Fields: []*schema.Field{idField, {
				Name: "owner", DataType: schema.TypeSingleLineText, Relation: &schema.Relation{Target: "User"},
			}}},
			err: "dsg: schema error on type T field owner: relation metadata on a SingleLineText field",
		},
		{
			name: "unknown cardinality",
			entity: &schema.Entity{Name: "T", Fields: []*schema.Field{idField, {
				Name: "owner", DataType: schema.TypeLookup, Relation: &schema.Relation{Target: "User", Cardinality: "some"},
			}}},
			err: `dsg: schema error on type T field owner: unknown relation cardinality "some"`,
		},
		{
			name: "unique to-many",
			entity: &schema.Entity{Name: "T", Fields: []*schema.Field{idField, {
				Name: "tags", DataType: schema.TypeLookup, Unique: true, Relation: &schema.Relation{Target: "Tag", Cardinality: schema.Many},
			}}},
			err: "dsg: schema error on type T field tags: to-many relation cannot be unique",
		},
		{
			name: "conflicting unique relations",
			entity: &schema.Entity{Name: "T", Fields: []*schema.Field{
				idField,
				{Name: "owner", DataType: schema.TypeLookup, Unique: true, Relation: &schema.Relation{Target: "User"}},
				{Name: "manager", DataType: schema.TypeLookup, Unique: true, Relation: &schema.Relation{Target: "User"}},
			}},
			err: `dsg: schema error on type T field manager: unique relation to "User" conflicts with unique field "owner"`,
		},
		{
			name:   "option set without options",
			entity: &schema.Entity{Name: "T", Fields: []*schema.Field{idField, {Name: "status", DataType: schema.TypeOptionSet}}},
			err:    "dsg: schema error on type T field status: option set requires at least one option",
		},
		{
			name: "duplicate options",
			entity: &schema.Entity{Name: "T", Fields: []*schema.Field{idField, {
				Name: "status", DataType: schema.TypeOptionSet, Options: []schema.Option{{Value: "active"}, {Value: "Active"}},
			}}},
			err: `dsg: schema error on type T field status: duplicate option value "Active"`,
		},
		{
			name:   "invalid entity name",
			entity: &schema.Entity{Name: "order-item", Fields: []*schema.Field{idField}},
			err:    `dsg: schema error on type order-item: invalid entity name: entity name "order-item" is not a valid identifier`,
		},
		{
			name:   "reserved entity name",
			entity: &schema.Entity{Name: "SortOrder", Fields: []*schema.Field{idField}},
			err:    `dsg: schema error on type SortOrder: invalid entity name: entity name "SortOrder" conflicts with a predeclared type`,
		},
		{
			name:   "lower-case entity name",
			entity: &schema.Entity{Name: "user", Fields: []*schema.Field{idField}},
			err:    `dsg: schema error on type user: invalid entity name: entity name "user" must start with an upper-case letter`,
		},
		{
			name:   "uncountable name",
			entity: &schema.Entity{Name: "Sheep", Fields: []*schema.Field{idField}},
			err:    "dsg: schema error on type Sheep: plural name must differ from the entity name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := NewType(tt.entity)
			require.Nil(t, typ)
			require.EqualError(t, err, tt.err)
			require.True(t, IsSchemaError(err))
		})
	}
}

func TestType_Fields(t *testing.T) {
	typ, err := NewType(&schema.Entity{
		Name: "Customer",
		Fields: []*schema.Field{
			{Name: "createdAt", DataType: schema.TypeCreatedAt},
			idField,
			{Name: "email", DataType: schema.TypeEmail, Unique: true, Nullable: true},
			{Name: "password", DataType: schema.TypePassword},
			{Name: "status", DataType: schema.TypeOptionSet, Options: []schema.Option{{Label: "Active", Value: "active"}}},
			{Name: "tags", DataType: schema.TypeMultiSelectOptionSet, Options: []schema.Option{{Label: "VIP", Value: "vip"}}},
			{Name: "orders", DataType: schema.TypeLookup, Relation: &schema.Relation{Target: "Order", Cardinality: schema.Many}},
			{Name: "manager", DataType: schema.TypeLookup, Unique: true, Relation: &schema.Relation{Target: "User"}},
			{Name: "notes", DataType: schema.TypeMultiLineText, Searchable: ptr(false)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "id", typ.ID.Name)
	require.Equal(t, "createdAt", typ.Fields[0].Name, "fields keep declaration order")

	var unique []string
	for _, f := range typ.UniqueFields() {
		unique = append(unique, f.Name)
	}
	require.Equal(t, []string{"email", "manager"}, unique)

	var editable []string
	for _, f := range typ.EditableFields() {
		editable = append(editable, f.Name)
	}
	require.Equal(t, []string{"email", "password", "status", "tags", "orders", "manager", "notes"}, editable)

	require.Len(t, typ.EnumFields(), 2)
	status, _ := typ.Field("status")
	require.Equal(t, "EnumCustomerStatus", status.EnumName())
	require.True(t, status.IsEnum())
	require.False(t, status.IsList())
	tags, _ := typ.Field("tags")
	require.True(t, tags.IsList())
	require.False(t, tags.Searchable)

	orders, _ := typ.Field("orders")
	require.True(t, orders.IsToMany())
	require.False(t, orders.IsToOne())
	require.Equal(t, "Order", orders.TargetName())
	require.False(t, orders.Sortable())

	manager, _ := typ.Field("manager")
	require.True(t, manager.IsToOne())
	require.True(t, manager.IsLookup())

	password, _ := typ.Field("password")
	require.False(t, password.Exposed())
	require.False(t, password.Searchable)

	notes, _ := typ.Field("notes")
	require.False(t, notes.Searchable)

	require.Equal(t, schema.AllRoles, typ.Permission(schema.ActionView).Type)
}

func ptr[T any](v T) *T { return &v }
