package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zongruxie4/amplication/compiler/gen"
	"github.com/zongruxie4/amplication/compiler/gen/dto"
	"github.com/zongruxie4/amplication/schema"
)

func entities() []*schema.Entity {
	return []*schema.Entity{
		{
			Name: "Customer",
			Fields: []*schema.Field{
				{Name: "id", DataType: schema.TypeID},
				{Name: "email", DataType: schema.TypeEmail, Unique: true},
				{Name: "orders", DataType: schema.TypeLookup, Relation: &schema.Relation{Target: "Order", Cardinality: schema.Many, Inverse: "customer"}},
			},
		},
		{
			Name: "Order",
			Fields: []*schema.Field{
				{Name: "id", DataType: schema.TypeID},
				{Name: "total", DataType: schema.TypeDecimalNumber},
				{Name: "customer", DataType: schema.TypeLookup, Relation: &schema.Relation{Target: "Customer", Inverse: "orders"}},
			},
			Permissions: []*schema.Permission{
				{Action: schema.ActionDelete, Type: schema.Disabled},
			},
		},
	}
}

func config(t testing.TB, opts ...gen.Option) *gen.Config {
	t.Helper()
	opts = append([]gen.Option{
		gen.WithTarget(t.TempDir()),
		gen.WithDialects(gen.DialectNest, gen.DialectGraphQL, gen.DialectGo),
		gen.WithWorkers(2),
	}, opts...)
	return gen.MustNewConfig(opts...)
}

func read(t *testing.T, cfg *gen.Config, path string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(cfg.Target, filepath.FromSlash(path)))
	require.NoError(t, err)
	return string(b)
}

func paths(files []*File) []string {
	ps := make([]string, len(files))
	for i, f := range files {
		ps[i] = f.Path
	}
	return ps
}

func TestGenerate(t *testing.T) {
	cfg := config(t)
	report, err := Generate(context.Background(), cfg, entities()...)
	require.NoError(t, err)
	assert.Empty(t, report.Failures)
	assert.Empty(t, report.Cached)
	assert.Equal(t, []string{
		"common.dto.ts",
		"customer/customer.dto.ts",
		"customer/customer.resolver.ts",
		"dto/common.go",
		"dto/customer.go",
		"dto/order.go",
		"order/order.dto.ts",
		"order/order.resolver.ts",
		"schema.graphql",
	}, paths(report.Files))
	assert.Equal(t, []string{"dto/order.go", "order/order.dto.ts", "order/order.resolver.ts"}, paths(report.Entity("Order")))

	for _, f := range report.Files {
		assert.Equal(t, string(f.Content), read(t, cfg, f.Path))
	}

	orderDTO := read(t, cfg, "order/order.dto.ts")
	assert.True(t, strings.HasPrefix(orderDTO, "// "+gen.DefaultHeader+"\n"))
	assert.Contains(t, orderDTO, `import { Customer, CustomerWhereUniqueInput } from "../customer/customer.dto";`)
	assert.Contains(t, orderDTO, `from "../common.dto";`)
	assert.Contains(t, orderDTO, "FloatFilter")
	assert.Contains(t, orderDTO, "export class OrderWhereInput {")
	assert.NotContains(t, orderDTO, "OrderResolver")

	customerDTO := read(t, cfg, "customer/customer.dto.ts")
	assert.Contains(t, customerDTO, `from "../order/order.dto";`)
	assert.Contains(t, customerDTO, "OrderListRelationFilter")

	resolver := read(t, cfg, "order/order.resolver.ts")
	assert.Contains(t, resolver, `import { OrderService } from "./order.service";`)
	assert.Contains(t, resolver, `from "./order.dto";`)
	assert.Contains(t, resolver, "export class OrderResolver {")
	assert.NotContains(t, resolver, "deleteOrder")

	sdl := read(t, cfg, "schema.graphql")
	assert.True(t, strings.HasPrefix(sdl, "# "+gen.DefaultHeader+"\nscalar DateTime\nscalar JSON\n"))
	assert.Equal(t, 1, strings.Count(sdl, "type Query {"))
	assert.Equal(t, 1, strings.Count(sdl, "type Mutation {"))
	assert.Contains(t, sdl, "_customersMeta(")
	assert.Contains(t, sdl, "deleteCustomer(")
	assert.NotContains(t, sdl, "deleteOrder(")
	assert.Less(t, strings.Index(sdl, "type Query {"), strings.Index(sdl, "type Mutation {"))

	goSrc := read(t, cfg, "dto/order.go")
	assert.True(t, strings.HasPrefix(goSrc, "// "+gen.DefaultHeader))
	assert.Contains(t, goSrc, "package dto")
	assert.Contains(t, goSrc, "type OrderResolver interface {")
	assert.Contains(t, read(t, cfg, "dto/common.go"), "type StringFilter struct {")

	_, err = os.Stat(filepath.Join(cfg.Target, cfg.CacheFile))
	assert.True(t, os.IsNotExist(err), "cache is disabled by default")
}

func TestGenerate_Failures(t *testing.T) {
	cfg := config(t, gen.WithDialects(gen.DialectNest))
	es := append(entities(), &schema.Entity{Name: "Broken"})
	report, err := Generate(context.Background(), cfg, es...)
	require.Error(t, err)
	assert.True(t, gen.IsSchemaError(err))
	require.Contains(t, report.Failures, "Broken")
	assert.Len(t, report.Failures, 1)
	assert.NotEmpty(t, report.Entity("Customer"))
	assert.NotEmpty(t, read(t, cfg, "order/order.dto.ts"))
}

func TestGenerate_Cache(t *testing.T) {
	cfg := config(t, gen.WithCache(".cache"))
	ctx := context.Background()

	first, err := Generate(ctx, cfg, entities()...)
	require.NoError(t, err)
	assert.Empty(t, first.Cached)
	_, err = os.Stat(filepath.Join(cfg.Target, ".cache"))
	require.NoError(t, err)

	second, err := Generate(ctx, cfg, entities()...)
	require.NoError(t, err)
	assert.Equal(t, []string{"Customer", "Order"}, second.Cached)
	assert.Equal(t, paths(first.Files), paths(second.Files))
	for i := range first.Files {
		assert.Equal(t, string(first.Files[i].Content), string(second.Files[i].Content), first.Files[i].Path)
	}

	es := entities()
	es[1].Fields = append(es[1].Fields, &schema.Field{Name: "note", DataType: schema.TypeMultiLineText, Nullable: true})
	third, err := Generate(ctx, cfg, es...)
	require.NoError(t, err)
	assert.Equal(t, []string{"Customer"}, third.Cached)
	assert.Contains(t, read(t, cfg, "order/order.dto.ts"), "note?: string | null;")

	// Changing the configuration invalidates every entry.
	cfg.Header = "generated"
	fourth, err := Generate(ctx, cfg, es...)
	require.NoError(t, err)
	assert.Empty(t, fourth.Cached)
}

func TestGenerate_Cleanup(t *testing.T) {
	cfg := config(t, gen.WithDialects(gen.DialectNest))
	ctx := context.Background()
	_, err := Generate(ctx, cfg, entities()...)
	require.NoError(t, err)
	read(t, cfg, "customer/customer.resolver.ts")

	require.NoError(t, cfg.Apply(gen.WithoutFeatures(gen.FeatureResolvers)))
	report, err := Generate(ctx, cfg, entities()...)
	require.NoError(t, err)
	assert.NotContains(t, paths(report.Files), "customer/customer.resolver.ts")
	_, err = os.Stat(filepath.Join(cfg.Target, "customer", "customer.resolver.ts"))
	assert.True(t, os.IsNotExist(err))
	read(t, cfg, "customer/customer.dto.ts")
}

func TestGenerate_Canceled(t *testing.T) {
	cfg := config(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, cfg, entities()...)
	require.ErrorIs(t, err, context.Canceled)
	entries, err := os.ReadDir(cfg.Target)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_CanceledAfterBuild(t *testing.T) {
	cfg := config(t)
	es := append(entities(), &schema.Entity{Name: "Broken"})
	report, manifest, err := build(context.Background(), cfg, es)
	require.Error(t, err)
	require.NotNil(t, report)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = commit(ctx, cfg, report, manifest, err)
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, gen.IsSchemaError(err), "entity failures are kept")
	entries, err := os.ReadDir(cfg.Target)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_NilConfig(t *testing.T) {
	_, err := Generate(context.Background(), nil)
	assert.True(t, gen.IsConfigError(err))
}

func TestRoot(t *testing.T) {
	g, err := gen.NewGraph(config(t), entities()...)
	require.NoError(t, err)
	var units []*unit
	for _, typ := range g.Nodes {
		s, err := dto.Synthesize(typ)
		require.NoError(t, err)
		units = append(units, &unit{typ: typ, set: s})
	}
	var names []string
	for _, op := range root(units).Operations {
		names = append(names, op.Name)
	}
	assert.Equal(t, []string{
		"customers", "customer", "orders", "order",
		"createCustomer", "updateCustomer", "deleteCustomer", "createOrder", "updateOrder",
	}, names)
}

func TestBuild(t *testing.T) {
	cfg := config(t, gen.WithoutFeatures(gen.FeatureMetaQuery))
	report, err := Build(context.Background(), cfg, entities()...)
	require.NoError(t, err)
	require.NotEmpty(t, report.Files)
	entries, err := os.ReadDir(cfg.Target)
	require.NoError(t, err)
	assert.Empty(t, entries, "build does not write")
	for _, f := range report.Files {
		assert.NotContains(t, string(f.Content), "sMeta(", f.Path)
	}
}

func TestScopeModule(t *testing.T) {
	units := []*unit{{typ: &gen.Type{Name: "Order"}, set: &dto.Set{
		WhereUnique: &dto.Declaration{Name: "OrderWhereUniqueInput"},
	}}}
	s := newScope(units)
	tests := []struct {
		from, name, module string
	}{
		{"Order", "OrderWhereUniqueInput", "./order.dto"},
		{"Customer", "OrderWhereUniqueInput", "../order/order.dto"},
		{"Customer", "StringFilter", "../common.dto"},
		{"Customer", "CustomerService", "./customer.service"},
		{"Customer", "Unknown", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.module, s.module(tt.from, tt.name), tt.name)
	}
}
