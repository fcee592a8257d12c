package internal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pratdiff/internal/diff"
)

func writeInputs(t *testing.T, old, new string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	lhs := filepath.Join(dir, "old.txt")
	rhs := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(lhs, []byte(old), 0644))
	require.NoError(t, os.WriteFile(rhs, []byte(new), 0644))
	return lhs, rhs
}

func TestRunApplication_Differences(t *testing.T) {
	// GIVEN
	lhs, rhs := writeInputs(t, "a\nb\n", "a\nc\n")
	var out bytes.Buffer

	// WHEN
	differ, err := RunApplication(context.Background(), Options{
		Lhs:       lhs,
		Rhs:       rhs,
		Context:   3,
		Algorithm: diff.Patience,
		Output:    &out,
	})

	// THEN
	require.NoError(t, err)
	assert.True(t, differ)
	assert.Equal(t, strings.Join([]string{
		"--- old.txt",
		"+++ new.txt",
		"@@ -1,2 +1,2 @@",
		" a",
		"-b",
		"+c",
	}, "\n")+"\n", out.String())
}

func TestRunApplication_VerbosePaths(t *testing.T) {
	// GIVEN
	lhs, rhs := writeInputs(t, "a\n", "b\n")
	var out bytes.Buffer

	// WHEN
	_, err := RunApplication(context.Background(), Options{
		Lhs:          lhs,
		Rhs:          rhs,
		VerbosePaths: true,
		Output:       &out,
	})

	// THEN
	require.NoError(t, err)
	assert.Contains(t, out.String(), "--- "+lhs+"\n")
	assert.Contains(t, out.String(), "+++ "+rhs+"\n")
}

func TestRunApplication_Identical(t *testing.T) {
	// GIVEN
	lhs, rhs := writeInputs(t, "same\n", "same\n")
	var out bytes.Buffer

	// WHEN
	differ, err := RunApplication(context.Background(), Options{Lhs: lhs, Rhs: rhs, Output: &out})

	// THEN
	require.NoError(t, err)
	assert.False(t, differ)
	assert.Empty(t, out.String())
}

func TestRunApplication_Stdin(t *testing.T) {
	// GIVEN
	_, rhs := writeInputs(t, "", "x\ny\n")
	var out bytes.Buffer

	// WHEN
	differ, err := RunApplication(context.Background(), Options{
		Lhs:     "-",
		Rhs:     rhs,
		Context: 3,
		Output:  &out,
		Stdin:   strings.NewReader("x\n"),
	})

	// THEN
	require.NoError(t, err)
	assert.True(t, differ)
	assert.Contains(t, out.String(), "--- -\n")
	assert.Contains(t, out.String(), "+y\n")
}

func TestRunApplication_MissingInput(t *testing.T) {
	// GIVEN
	lhs, _ := writeInputs(t, "a\n", "a\n")

	// WHEN
	_, err := RunApplication(context.Background(), Options{
		Lhs:    lhs,
		Rhs:    filepath.Join(t.TempDir(), "missing"),
		Output: &bytes.Buffer{},
	})

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunApplication_WatchStdin(t *testing.T) {
	_, err := RunApplication(context.Background(), Options{
		Lhs:   "-",
		Rhs:   "other",
		Watch: true,
	})
	assert.EqualError(t, err, "cannot watch standard input")
}

func TestRunApplication_WatchInterruptedBeforeStart(t *testing.T) {
	// GIVEN
	lhs, rhs := writeInputs(t, "a\n", "b\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer

	// WHEN
	differ, err := RunApplication(ctx, Options{
		Lhs:    lhs,
		Rhs:    rhs,
		Watch:  true,
		Output: &out,
	})

	// THEN
	if err != nil {
		// whichever actor returns first decides the result
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.True(t, differ)
	assert.Contains(t, out.String(), "-a\n+b\n")
}
