package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(map[string]string{"a": "1", "b": "2", "c": "3"})
	require.NoError(t, err)
	for range 10 {
		b, err := Fingerprint(map[string]string{"c": "3", "b": "2", "a": "1"})
		require.NoError(t, err)
		require.Equal(t, a, b, "map keys are sorted")
	}

	c, err := Fingerprint(map[string]string{"a": "1", "b": "2", "c": "4"})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	x, err := Fingerprint(map[string]any{"x": 1, "y": []string{"z"}, "w": true})
	require.NoError(t, err)
	for range 10 {
		y, err := Fingerprint(map[string]any{"w": true, "y": []string{"z"}, "x": 1})
		require.NoError(t, err)
		require.Equal(t, x, y)
	}

	id, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())
}

func TestManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest")

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Empty(t, m.Entities)

	m.Store("Order", "fp1", map[string]string{partDTO: "class Order {}"})
	parts, ok := m.Lookup("Order", "fp1")
	require.True(t, ok)
	assert.Equal(t, "class Order {}", parts[partDTO])
	_, ok = m.Lookup("Order", "fp2")
	assert.False(t, ok)
	_, ok = m.Lookup("Customer", "fp1")
	assert.False(t, ok)

	b, err := m.Encode()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o644))
	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	parts, ok = loaded.Lookup("Order", "fp1")
	require.True(t, ok)
	assert.Equal(t, "class Order {}", parts[partDTO])
}

func TestLoadManifest_Errors(t *testing.T) {
	dir := t.TempDir()

	stale := NewManifest()
	stale.Version = manifestVersion + 1
	stale.Store("Order", "fp", nil)
	b, err := stale.Encode()
	require.NoError(t, err)
	path := filepath.Join(dir, "stale")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Empty(t, m.Entities, "manifests of other versions are dropped")

	path = filepath.Join(dir, "corrupt")
	require.NoError(t, os.WriteFile(path, []byte{0xc1}, 0o644))
	_, err = LoadManifest(path)
	require.Error(t, err)
}
