package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/fontsync/pkg/layout"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".fontsync.lock")

	m, err := Load(testContext(t), path)
	require.NoError(t, err)
	assert.Empty(t, m.Fonts)
	assert.Equal(t, SchemaVersion, m.SchemaVersion)
	assert.Equal(t, path, m.Path())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), "repo", ".fontsync.lock")

	m := New(path)
	m.Record("bravura", "1.2", map[layout.FormatClass][]string{
		layout.OTF: {"bravura.otf", "BravuraText.otf"},
		layout.SVG: {"bravura.svg"},
	})
	require.NoError(t, m.Save(ctx))
	assert.NoFileExists(t, path+".tmp")

	loaded, err := Load(ctx, path)
	require.NoError(t, err)
	require.Contains(t, loaded.Fonts, "bravura")
	assert.Equal(t, "1.2", loaded.Fonts["bravura"].Version)
	assert.Equal(t, []string{"BravuraText.otf", "bravura.otf"}, loaded.Links("bravura", layout.OTF))
	assert.Equal(t, []string{"bravura.svg"}, loaded.Links("bravura", layout.SVG))
	assert.False(t, loaded.LastUpdated.IsZero())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIs  error
	}{
		{name: "invalid_json", content: "{not json"},
		{name: "wrong_schema", content: `{"schema_version": 99, "fonts": {}}`, wantIs: ErrSchemaVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".fontsync.lock")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(testContext(t), path)
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestOwner(t *testing.T) {
	m := New("unused")
	m.Record("foo", "1.0", map[layout.FormatClass][]string{layout.OTF: {"foo.otf"}})
	m.Record("foobar", "1.0", map[layout.FormatClass][]string{layout.OTF: {"foobar.otf"}})

	owner, ok := m.Owner(layout.OTF, "foobar.otf")
	assert.True(t, ok)
	assert.Equal(t, "foobar", owner)

	owner, ok = m.Owner(layout.OTF, "foo.otf")
	assert.True(t, ok)
	assert.Equal(t, "foo", owner)

	_, ok = m.Owner(layout.SVG, "foo.otf")
	assert.False(t, ok, "ownership is per format class")

	_, ok = m.Owner(layout.OTF, "unknown.otf")
	assert.False(t, ok)
}

func TestForget(t *testing.T) {
	m := New("unused")
	m.Record("foo", "1.0", map[layout.FormatClass][]string{layout.OTF: {"foo.otf"}})
	m.Forget("foo")

	_, ok := m.Owner(layout.OTF, "foo.otf")
	assert.False(t, ok)
	assert.Nil(t, m.Links("foo", layout.OTF))
}

func TestNilManifest(t *testing.T) {
	var m *Manifest

	_, ok := m.Owner(layout.OTF, "foo.otf")
	assert.False(t, ok)
	assert.Nil(t, m.Links("foo", layout.OTF))
	assert.NotPanics(t, func() {
		m.Record("foo", "1.0", nil)
		m.Forget("foo")
	})
}
