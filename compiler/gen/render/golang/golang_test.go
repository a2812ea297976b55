package golang_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zongruxie4/amplication/compiler/gen"
	"github.com/zongruxie4/amplication/compiler/gen/dto"
	"github.com/zongruxie4/amplication/compiler/gen/render"
	"github.com/zongruxie4/amplication/compiler/gen/render/golang"
	"github.com/zongruxie4/amplication/schema"
)

// squash collapses the alignment gofmt adds to struct fields.
func squash(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.Join(strings.Fields(l), " ")
	}
	return strings.Join(lines, "\n")
}

func order(t *testing.T) *dto.Set {
	t.Helper()
	typ, err := gen.NewType(&schema.Entity{
		Name: "Order",
		Fields: []*schema.Field{
			{Name: "id", DataType: schema.TypeID},
			{Name: "total", DataType: schema.TypeDecimalNumber},
			{Name: "note", DataType: schema.TypeMultiLineText, Nullable: true},
			{Name: "status", DataType: schema.TypeOptionSet, Options: []schema.Option{{Value: "open"}, {Value: "closed"}}},
			{Name: "placedAt", DataType: schema.TypeDateTime},
			{Name: "payload", DataType: schema.TypeJSON, Nullable: true},
		},
		Permissions: []*schema.Permission{
			{Action: schema.ActionView, Type: schema.Public},
			{Action: schema.ActionCreate, Type: schema.Granular, Roles: []string{"admin", "clerk"}},
		},
	})
	require.NoError(t, err)
	s, err := dto.Synthesize(typ)
	require.NoError(t, err)
	return s
}

func TestDialect_Struct(t *testing.T) {
	s := order(t)
	d := golang.New()
	text, err := render.New(d, s.Declarations()...).Emit(s.Object)
	require.NoError(t, err)
	text = squash(text)

	for _, want := range []string{
		"// Order is a generated object type.",
		"type Order struct {",
		"ID string `json:\"id\" validate:\"required\"`",
		"Total float64 `json:\"total\" validate:\"required\"`",
		"Note *string `json:\"note,omitempty\" validate:\"omitempty\"`",
		"Status EnumOrderStatus `json:\"status\" validate:\"required\"`",
		"PlacedAt time.Time `json:\"placedAt\" validate:\"required\"`",
		"Payload json.RawMessage `json:\"payload,omitempty\" validate:\"omitempty\"`",
	} {
		assert.Contains(t, text, want)
	}
}

func TestDialect_Input(t *testing.T) {
	s := order(t)
	text, err := render.New(golang.New(), s.Declarations()...).Emit(s.FindMany)
	require.NoError(t, err)
	text = squash(text)
	assert.Contains(t, text, "type OrderFindManyArgs struct {")
	assert.Contains(t, text, "Where *OrderWhereInput `json:\"where,omitempty\" validate:\"omitempty\"`")
	assert.Contains(t, text, "OrderBy []*OrderOrderByInput `json:\"orderBy,omitempty\" validate:\"omitempty,dive\"`")
	assert.Contains(t, text, "Skip *int `json:\"skip,omitempty\" validate:\"omitempty\"`")
}

func TestDialect_Enum(t *testing.T) {
	s := order(t)
	text, err := render.New(golang.New()).Emit(s.Enums[0])
	require.NoError(t, err)
	text = squash(text)
	assert.Contains(t, text, "type EnumOrderStatus string")
	assert.Contains(t, text, `EnumOrderStatusOpen EnumOrderStatus = "open"`)
	assert.Contains(t, text, `EnumOrderStatusClosed EnumOrderStatus = "closed"`)
}

func TestDialect_Resolver(t *testing.T) {
	s := order(t)
	text, err := render.New(golang.New(), s.Declarations()...).Emit(s.Resolver)
	require.NoError(t, err)
	assert.Contains(t, text, "type OrderResolver interface {")
	assert.Contains(t, text, "// Order is public.")
	assert.Contains(t, text, "// Orders requires an authenticated caller.", "search is not covered by the view rule")
	assert.Contains(t, text, "Orders(ctx context.Context, args *OrderFindManyArgs) ([]*Order, error)")
	assert.Contains(t, text, "// CreateOrder requires one of the roles: admin, clerk.")
	assert.Contains(t, text, "CreateOrder(ctx context.Context, args *CreateOrderArgs) (*Order, error)")
	assert.Contains(t, text, "// DeleteOrder requires an authenticated caller.")
	assert.NotContains(t, text, "Meta")
}

func TestFile(t *testing.T) {
	s := order(t)
	d := golang.New()
	_, err := render.New(d, append(s.Declarations(), dto.Common()...)...).EmitAll(s.Declarations()...)
	require.NoError(t, err)

	f := d.File("order", "Code generated by dsg. DO NOT EDIT.")
	src := fmt.Sprintf("%#v", f)
	assert.True(t, strings.HasPrefix(src, "// Code generated by dsg. DO NOT EDIT.\n"))
	assert.Contains(t, src, "package order")
	assert.Contains(t, src, `"context"`)
	assert.Contains(t, src, `"encoding/json"`)
	assert.Contains(t, src, `"time"`)
	assert.Contains(t, src, "type OrderResolver interface {")
	assert.Equal(t, 1, strings.Count(src, "type OrderWhereUniqueInput struct {"))
}
