package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zongruxie4/amplication/compiler/gen"
)

const customerYAML = `
name: Customer
fields:
  - name: id
    dataType: Id
  - name: email
    dataType: Email
    unique: true
`

func schemaDir(t *testing.T, content string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "entities")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "customer.yaml"), []byte(content), 0o644))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := RootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectFile)

	p, err := LoadProject(path, false)
	require.NoError(t, err)
	assert.Equal(t, &Project{}, p)
	_, err = LoadProject(path, true)
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte(`
schema: [entities]
target: out
dialects: [graphql]
header: ""
workers: 2
disable: [meta]
`), 0o644))
	p, err = LoadProject(path, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"entities"}, p.Schema)
	require.NotNil(t, p.Header)
	assert.Empty(t, *p.Header)

	opts, err := p.Options()
	require.NoError(t, err)
	cfg, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Target)
	assert.Equal(t, []string{gen.DialectGraphQL}, cfg.Dialects)
	assert.Equal(t, 2, cfg.Workers)
	assert.Empty(t, cfg.Header)
	assert.False(t, cfg.Enabled(gen.FeatureMetaQuery))

	require.NoError(t, os.WriteFile(path, []byte("targets: out\n"), 0o644))
	_, err = LoadProject(path, true)
	require.Error(t, err, "unknown keys are rejected")

	require.NoError(t, os.WriteFile(path, nil, 0o644))
	p, err = LoadProject(path, true)
	require.NoError(t, err)
	assert.Equal(t, &Project{}, p)
}

func TestProject_UnknownFeature(t *testing.T) {
	_, err := (&Project{Features: []string{"missing"}}).Options()
	require.Error(t, err)
	assert.True(t, gen.IsConfigError(err))

	_, err = run(t, "generate", "--feature", "missing", "-s", schemaDir(t, customerYAML))
	require.Error(t, err)
	assert.True(t, gen.IsConfigError(err))
}

func TestGenerateCmd(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out")
	out, err := run(t, "generate", "-s", schemaDir(t, customerYAML), "-o", target, "-d", "nest,graphql")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("customer", "customer.dto.ts"))
	assert.Contains(t, out, "schema.graphql")
	for _, name := range []string{"common.dto.ts", "schema.graphql", "customer/customer.dto.ts", "customer/customer.resolver.ts"} {
		assert.FileExists(t, filepath.Join(target, name))
	}
	assert.NoFileExists(t, filepath.Join(target, "dto", "customer.go"))
}

func TestGenerateCmd_Project(t *testing.T) {
	dir := t.TempDir()
	schema := schemaDir(t, customerYAML)
	project := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(project, []byte(`
schema: [`+schema+`]
target: `+filepath.Join(dir, "out")+`
dialects: [go]
package: models
`), 0o644))
	_, err := run(t, "generate", "-p", project)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "out", "models", "customer.go"))

	_, err = run(t, "generate", "-p", filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist, "an explicit project file must exist")
}

func TestGenerateCmd_Sources(t *testing.T) {
	_, err := run(t, "generate")
	require.ErrorContains(t, err, "no entity definitions")

	_, err = run(t, "generate", "-s", schemaDir(t, customerYAML), "--driver", "sqlite", "--dsn", ":memory:")
	require.ErrorContains(t, err, "either schema files or a schema store")
}

func TestPrintCmd(t *testing.T) {
	dir := schemaDir(t, customerYAML)
	out, err := run(t, "print", "Customer", "-s", dir, "-d", "nest")
	require.NoError(t, err)
	assert.Contains(t, out, "customer/customer.dto.ts")
	assert.Contains(t, out, "CustomerWhereInput")
	assert.Contains(t, out, "customer/customer.resolver.ts")

	_, err = run(t, "print", "Order", "-s", dir)
	require.ErrorContains(t, err, `entity "Order" not found`)

	_, err = run(t, "print", "-s", dir)
	require.Error(t, err)
}

func TestFeaturesCmd(t *testing.T) {
	out, err := run(t, "features")
	require.NoError(t, err)
	for _, f := range gen.AllFeatures {
		assert.Contains(t, out, f.Name)
	}
	assert.Contains(t, out, "alpha")
}

func TestWatchCmd(t *testing.T) {
	dir := schemaDir(t, customerYAML)
	target := filepath.Join(t.TempDir(), "out")
	dto := filepath.Join(target, "customer", "customer.dto.ts")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cmd := RootCmd()
	cmd.SetArgs([]string{"watch", "-s", dir, "-o", target, "-d", "nest", "--debounce", "10ms"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(dto)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	changed := customerYAML + `  - name: nickname
    dataType: SingleLineText
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "customer.yaml"), []byte(changed), 0o644))
	require.Eventually(t, func() bool {
		b, err := os.ReadFile(dto)
		return err == nil && bytes.Contains(b, []byte("nickname"))
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchCmd_Store(t *testing.T) {
	_, err := run(t, "watch", "--driver", "sqlite", "--dsn", ":memory:")
	require.ErrorContains(t, err, "requires schema files")
}
