package files

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pratdiff/internal/data/diff_state"
	"pratdiff/internal/printer"
)

func newTestDiffer(out *bytes.Buffer, prefix string, maxLines int) *Differ {
	p := printer.New(out, 3, printer.WithCommonPrefix(prefix))
	return NewDiffer(p, &Reader{Stdin: strings.NewReader("")}, maxLines)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDiffPaths_Files(t *testing.T) {
	// GIVEN
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "old", "f.txt"), "a\nb\nc\n")
	writeFile(t, filepath.Join(root, "new", "f.txt"), "a\nc\n")
	var out bytes.Buffer
	d := newTestDiffer(&out, root, 0)

	// WHEN
	changed, err := d.DiffPaths(filepath.Join(root, "old", "f.txt"), filepath.Join(root, "new", "f.txt"))

	// THEN
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, strings.Join([]string{
		"--- " + filepath.Join("old", "f.txt"),
		"+++ " + filepath.Join("new", "f.txt"),
		"@@ -1,3 +1,2 @@",
		" a",
		"-b",
		" c",
	}, "\n")+"\n", out.String())
}

func TestDiffPaths_Identical(t *testing.T) {
	// GIVEN
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"), "same\n")
	writeFile(t, filepath.Join(root, "b"), "same\n")
	var out bytes.Buffer
	d := newTestDiffer(&out, "", 0)

	// WHEN
	changed, err := d.DiffPaths(filepath.Join(root, "a"), filepath.Join(root, "b"))

	// THEN
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, out.String())
	assert.Equal(t, 1, d.Summary[diff_state.Equal])
}

func TestDiffPaths_Binary(t *testing.T) {
	// GIVEN
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), "\xff\xfe")
	writeFile(t, filepath.Join(root, "b.txt"), "text\n")
	var out bytes.Buffer
	d := newTestDiffer(&out, root, 0)

	// WHEN
	changed, err := d.DiffPaths(filepath.Join(root, "a.bin"), filepath.Join(root, "b.txt"))

	// THEN
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Files a.bin (binary) and b.txt differ\n", out.String())
}

func TestDiffPaths_TooLarge(t *testing.T) {
	// GIVEN
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"), "1\n2\n3\n")
	writeFile(t, filepath.Join(root, "b"), "1\n")
	var out bytes.Buffer
	d := newTestDiffer(&out, root, 2)

	// WHEN
	changed, err := d.DiffPaths(filepath.Join(root, "a"), filepath.Join(root, "b"))

	// THEN
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Files a (too large) and b differ\n", out.String())
}

func TestDiffPaths_LineEndingsOnly(t *testing.T) {
	// GIVEN
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"), "x\r\ny\r\n")
	writeFile(t, filepath.Join(root, "b"), "x\ny\n")
	var out bytes.Buffer
	d := newTestDiffer(&out, root, 0)

	// WHEN
	changed, err := d.DiffPaths(filepath.Join(root, "a"), filepath.Join(root, "b"))

	// THEN
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Files a and b differ\n", out.String())
}

func TestDiffPaths_DirectoryAndFile(t *testing.T) {
	// GIVEN
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dir", "f.txt"), "x\n")
	writeFile(t, filepath.Join(root, "f.txt"), "y\n")
	var out bytes.Buffer
	d := newTestDiffer(&out, root, 0)

	// WHEN
	changed, err := d.DiffPaths(filepath.Join(root, "dir"), filepath.Join(root, "f.txt"))

	// THEN
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, out.String(), "--- "+filepath.Join("dir", "f.txt")+"\n")
	assert.Contains(t, out.String(), "-x\n+y\n")
}

func TestDiffPaths_DirectoryAndStdin(t *testing.T) {
	// GIVEN
	var out bytes.Buffer
	d := newTestDiffer(&out, "", 0)

	// WHEN
	_, err := d.DiffPaths(t.TempDir(), StdinPath)

	// THEN
	assert.ErrorContains(t, err, "standard input")
}

func TestDiffPaths_Trees(t *testing.T) {
	// GIVEN
	root := t.TempDir()
	old := filepath.Join(root, "old")
	new := filepath.Join(root, "new")
	writeFile(t, filepath.Join(old, "same.txt"), "same\n")
	writeFile(t, filepath.Join(new, "same.txt"), "same\n")
	writeFile(t, filepath.Join(old, "changed.txt"), "one\n")
	writeFile(t, filepath.Join(new, "changed.txt"), "two\n")
	writeFile(t, filepath.Join(old, "removed.txt"), "gone\n")
	writeFile(t, filepath.Join(new, "sub", "added.txt"), "new\n")
	writeFile(t, filepath.Join(old, "kind"), "file\n")
	writeFile(t, filepath.Join(new, "kind", "inner"), "dir\n")
	var out bytes.Buffer
	d := newTestDiffer(&out, root, 0)

	// WHEN
	changed, err := d.DiffPaths(old, new)

	// THEN
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, strings.Join([]string{
		"--- " + filepath.Join("old", "changed.txt"),
		"+++ " + filepath.Join("new", "changed.txt"),
		"@@ -1,1 +1,1 @@",
		"-one",
		"+two",
		"File " + filepath.Join("old", "kind") + " is a regular file while file " + filepath.Join("new", "kind") + " is a directory",
		"Only in old: removed.txt",
		"Only in new: sub",
	}, "\n")+"\n", out.String())
	assert.Equal(t, 1, d.Summary[diff_state.Equal])
	assert.Equal(t, 2, d.Summary[diff_state.Modified])
	assert.Equal(t, 1, d.Summary[diff_state.Deleted])
	assert.Equal(t, 1, d.Summary[diff_state.Added])
}

func TestSummary_String(t *testing.T) {
	// GIVEN
	summary := Summary{
		diff_state.Modified: 1200,
		diff_state.Added:    2,
	}

	// THEN
	assert.Equal(t, "2 added, 1,200 modified", summary.String())
	assert.True(t, summary.HasChanges())
	assert.Equal(t, "nothing compared", Summary{}.String())
	assert.False(t, Summary{diff_state.Equal: 3}.HasChanges())
}
