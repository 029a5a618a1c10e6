package pathsafe_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsl-tools/wslsync/internal/pathsafe"
)

func TestJoin(t *testing.T) {
	base := "/base"

	tests := []struct {
		entry   string
		want    string
		wantErr bool
	}{
		{entry: "a.txt", want: "/base/a.txt"},
		{entry: "dir/sub/file", want: "/base/dir/sub/file"},
		{entry: "dir/../a.txt", want: "/base/a.txt"},
		{entry: "../escape", wantErr: true},
		{entry: "dir/../../escape", wantErr: true},
		{entry: "/etc/passwd", wantErr: true},
		{entry: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := pathsafe.Join(base, tt.entry)
		if tt.wantErr {
			assert.ErrorIs(t, err, pathsafe.ErrTraversal, "entry %q", tt.entry)
			continue
		}
		require.NoError(t, err, "entry %q", tt.entry)
		assert.Equal(t, tt.want, got)
	}
}

func TestWithin_Lexical(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "a")
	require.NoError(t, os.MkdirAll(base, 0755))

	// Equal to base.
	assert.True(t, pathsafe.Within(base, base))

	// Descendant (not yet existing).
	assert.True(t, pathsafe.Within(filepath.Join(base, "sub", "file.txt"), base))

	// /a/../b resolves outside /a.
	assert.False(t, pathsafe.Within(filepath.Join(base, "..", "b"), base))

	// Sibling with a common name prefix is not a descendant.
	sibling := filepath.Join(dir, "ab")
	require.NoError(t, os.MkdirAll(sibling, 0755))
	assert.False(t, pathsafe.Within(sibling, base))
}

func TestWithin_NonexistentCandidate(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base")
	require.NoError(t, os.MkdirAll(base, 0755))

	// Deeply nested path where no component exists yet.
	assert.True(t, pathsafe.Within(filepath.Join(base, "x", "y", "z"), base))
	assert.False(t, pathsafe.Within(filepath.Join(base, "x", "..", "..", "out"), base))
}

func TestWithin_SymlinkEscape(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base")
	outside := filepath.Join(dir, "outside")
	require.NoError(t, os.MkdirAll(base, 0755))
	require.NoError(t, os.MkdirAll(outside, 0755))

	// base/link -> outside; anything under the link escapes.
	link := filepath.Join(base, "link")
	require.NoError(t, os.Symlink(outside, link))

	assert.False(t, pathsafe.Within(link, base))
	assert.False(t, pathsafe.Within(filepath.Join(link, "file.txt"), base))

	// A symlink that stays inside base is fine.
	inner := filepath.Join(base, "inner")
	require.NoError(t, os.MkdirAll(inner, 0755))
	innerLink := filepath.Join(base, "alias")
	require.NoError(t, os.Symlink(inner, innerLink))
	assert.True(t, pathsafe.Within(filepath.Join(innerLink, "file.txt"), base))
}
