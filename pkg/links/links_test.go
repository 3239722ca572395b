package links

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/fontsync/pkg/layout"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

type ownerMap map[string]string

func (o ownerMap) Owner(class layout.FormatClass, name string) (string, bool) {
	b, ok := o[string(class)+"/"+name]
	return b, ok
}

func touch(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(filepath.Base(p)), 0644))
	}
}

func newLayout(t *testing.T) layout.Layout {
	root := t.TempDir()
	return layout.New(filepath.Join(root, "repo"), filepath.Join(root, "install"))
}

func TestConsistent(t *testing.T) {
	tests := []struct {
		name      string
		source    map[layout.FormatClass][]string
		installed map[layout.FormatClass][]string
		owners    Owners
		want      bool
	}{
		{
			name:      "same_names_any_order",
			source:    map[layout.FormatClass][]string{layout.OTF: {"A-Regular.otf", "A-Bold.otf"}},
			installed: map[layout.FormatClass][]string{layout.OTF: {"A-Bold.otf", "A-Regular.otf"}},
			want:      true,
		},
		{
			name:      "missing_installed_file",
			source:    map[layout.FormatClass][]string{layout.OTF: {"A-Regular.otf", "A-Bold.otf"}},
			installed: map[layout.FormatClass][]string{layout.OTF: {"A-Regular.otf"}},
			want:      false,
		},
		{
			name:      "unprefixed_source_file_never_installed",
			source:    map[layout.FormatClass][]string{layout.OTF: {"A-Regular.otf", "LICENSE.txt"}},
			installed: map[layout.FormatClass][]string{layout.OTF: {"A-Regular.otf"}},
			want:      false,
		},
		{
			name:      "svg_mismatch",
			source:    map[layout.FormatClass][]string{layout.OTF: {"A.otf"}, layout.SVG: {"A.svg", "A.woff"}},
			installed: map[layout.FormatClass][]string{layout.OTF: {"A.otf"}, layout.SVG: {"A.svg"}},
			want:      false,
		},
		{
			name: "nothing_anywhere",
			want: true,
		},
		{
			name:      "other_fonts_ignored",
			source:    map[layout.FormatClass][]string{layout.OTF: {"A.otf"}},
			installed: map[layout.FormatClass][]string{layout.OTF: {"A.otf", "Zed.otf"}},
			want:      true,
		},
		{
			name:      "prefix_collision_without_owners",
			source:    map[layout.FormatClass][]string{layout.OTF: {"A.otf"}},
			installed: map[layout.FormatClass][]string{layout.OTF: {"A.otf", "AB.otf"}},
			want:      false,
		},
		{
			name:      "prefix_collision_resolved_by_owners",
			source:    map[layout.FormatClass][]string{layout.OTF: {"A.otf"}},
			installed: map[layout.FormatClass][]string{layout.OTF: {"A.otf", "AB.otf"}},
			owners:    ownerMap{"otf/AB.otf": "AB"},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLayout(t)
			for class, names := range tt.source {
				for _, n := range names {
					touch(t, filepath.Join(l.SourceDir("A", class), n))
				}
			}
			for class, names := range tt.installed {
				for _, n := range names {
					touch(t, filepath.Join(l.TargetDir(class), n))
				}
			}

			got, err := Consistent(l, "A", tt.owners)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdate(t *testing.T) {
	ctx := testContext(t)
	l := newLayout(t)

	touch(t,
		filepath.Join(l.SourceDir("bravura", layout.OTF), "bravura.otf"),
		filepath.Join(l.SourceDir("bravura", layout.OTF), "BravuraText.otf"),
		filepath.Join(l.SourceDir("bravura", layout.SVG), "bravura.svg"),
		filepath.Join(l.SourceDir("bravura", layout.SVG), "bravura.woff"),
	)

	// a stale link, a regular file with the prefix, and another font's link
	require.NoError(t, os.MkdirAll(l.TargetDir(layout.OTF), 0755))
	require.NoError(t, os.Symlink("/nowhere/bravura-old.otf", filepath.Join(l.TargetDir(layout.OTF), "bravura-old.otf")))
	touch(t, filepath.Join(l.TargetDir(layout.OTF), "bravura-user.otf"))
	require.NoError(t, os.Symlink("/nowhere/emmentaler.otf", filepath.Join(l.TargetDir(layout.OTF), "emmentaler.otf")))

	res, err := Update(ctx, l, "bravura", nil)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, []string{"bravura-old.otf"}, res.Removed[layout.OTF])
	assert.ElementsMatch(t, []string{"bravura.otf"}, res.Created[layout.OTF], "only names starting with the basename are linked")
	assert.ElementsMatch(t, []string{"bravura.svg", "bravura.woff"}, res.Created[layout.SVG])

	target, err := os.Readlink(filepath.Join(l.TargetDir(layout.OTF), "bravura.otf"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(target))
	assert.Equal(t, filepath.Join(l.SourceDir("bravura", layout.OTF), "bravura.otf"), target)

	assert.FileExists(t, filepath.Join(l.TargetDir(layout.OTF), "bravura-user.otf"), "regular files are never removed")
	_, err = os.Lstat(filepath.Join(l.TargetDir(layout.OTF), "emmentaler.otf"))
	assert.NoError(t, err, "other fonts' links are untouched")
}

func TestUpdateThenConsistent(t *testing.T) {
	ctx := testContext(t)
	l := newLayout(t)
	touch(t,
		filepath.Join(l.SourceDir("gonville", layout.OTF), "gonville-11.otf"),
		filepath.Join(l.SourceDir("gonville", layout.SVG), "gonville-11.svg"),
	)

	ok, err := Consistent(l, "gonville", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Update(ctx, l, "gonville", nil)
	require.NoError(t, err)

	ok, err = Consistent(l, "gonville", nil)
	require.NoError(t, err)
	assert.True(t, ok)

	// running it again replaces the links in place
	res, err := Update(ctx, l, "gonville", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"gonville-11.otf"}, res.Removed[layout.OTF])
	assert.Equal(t, []string{"gonville-11.otf"}, res.Created[layout.OTF])
}

func TestUpdateKeepsOtherOwnersLinks(t *testing.T) {
	ctx := testContext(t)
	l := newLayout(t)
	touch(t, filepath.Join(l.SourceDir("foo", layout.OTF), "foo.otf"))

	require.NoError(t, os.MkdirAll(l.TargetDir(layout.OTF), 0755))
	foobar := filepath.Join(l.TargetDir(layout.OTF), "foobar.otf")
	require.NoError(t, os.Symlink("/nowhere/foobar.otf", foobar))

	_, err := Update(ctx, l, "foo", ownerMap{"otf/foobar.otf": "foobar"})
	require.NoError(t, err)

	_, err = os.Lstat(foobar)
	assert.NoError(t, err, "a link recorded for another basename survives")
}

func TestUpdateCollectsFailures(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs a non-root unix user to make a directory unwritable")
	}

	ctx := testContext(t)
	l := newLayout(t)
	touch(t,
		filepath.Join(l.SourceDir("bravura", layout.OTF), "bravura.otf"),
		filepath.Join(l.SourceDir("bravura", layout.SVG), "bravura.svg"),
	)

	require.NoError(t, os.MkdirAll(l.TargetDir(layout.OTF), 0755))
	require.NoError(t, os.Chmod(l.TargetDir(layout.OTF), 0555))
	t.Cleanup(func() { os.Chmod(l.TargetDir(layout.OTF), 0755) })

	res, err := Update(ctx, l, "bravura", nil)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Len(t, res.Failed, 1)
	assert.Equal(t, []string{"bravura.svg"}, res.Created[layout.SVG], "svg links are still created")
}

func TestRemove(t *testing.T) {
	ctx := testContext(t)
	l := newLayout(t)
	touch(t, filepath.Join(l.SourceDir("bravura", layout.OTF), "bravura.otf"))

	_, err := Update(ctx, l, "bravura", nil)
	require.NoError(t, err)

	removed, err := Remove(ctx, l, "bravura", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"bravura.otf"}, removed[layout.OTF])
	assert.Empty(t, removed[layout.SVG])

	assert.NoFileExists(t, filepath.Join(l.TargetDir(layout.OTF), "bravura.otf"))
	assert.FileExists(t, filepath.Join(l.SourceDir("bravura", layout.OTF), "bravura.otf"))
}
