package materials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestManifestMissingFile(t *testing.T) {
	svc := NewService(t.TempDir())
	m, err := svc.Manifest()
	require.NoError(t, err)
	assert.Equal(t, "1.0", m.Version)
	assert.Empty(t, m.Materials)
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "manifest.json"), `{
		"version": "1.0",
		"materials": [
			{"id": "rebar-01", "title": "鉄筋工事", "category": "構造", "total_pages": 12}
		]
	}`)

	svc := NewService(dir)
	m, err := svc.Manifest()
	require.NoError(t, err)
	require.Len(t, m.Materials, 1)
	assert.Equal(t, "rebar-01", m.Materials[0].ID)
	assert.Equal(t, 12, m.Materials[0].TotalPages)
}

func TestGet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "rebar-01", "metadata.json"), `{
		"id": "rebar-01",
		"title": "鉄筋工事",
		"total_pages": 2,
		"pages": [
			{"page_number": 1, "page_id": "p1", "image_url": "/static/materials/rebar-01/pages/p1.jpg"},
			{"page_number": 2, "page_id": "p2", "image_url": "/static/materials/rebar-01/pages/p2.jpg"}
		]
	}`)

	svc := NewService(dir)
	m, err := svc.Get("rebar-01")
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalPages)
	require.Len(t, m.Pages, 2)
	assert.Equal(t, "p2", m.Pages[1].PageID)

	// Second read comes from the cache even if the file disappears.
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "rebar-01")))
	again, err := svc.Get("rebar-01")
	require.NoError(t, err)
	assert.Same(t, m, again)
}

func TestGetNotFound(t *testing.T) {
	svc := NewService(t.TempDir())
	_, err := svc.Get("missing")
	assert.ErrorIs(t, err, ErrMaterialNotFound)
}

func TestGetMalformedMetadata(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad", "metadata.json"), `{not json`)

	svc := NewService(dir)
	_, err := svc.Get("bad")
	assert.Error(t, err)
}

func TestPageCount(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "m1", "metadata.json"), `{"id":"m1","total_pages":7,"pages":[]}`)

	svc := NewService(dir)
	n, ok := svc.PageCount("m1")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = svc.PageCount("m2")
	assert.False(t, ok)
}
