package pathutil_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glink/internal/pathutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize_FixesCase(t *testing.T) {
	dir := t.TempDir()
	onDisk := filepath.Join(dir, "Games", "Half-Life 2")
	require.NoError(t, os.MkdirAll(onDisk, 0755))

	typed := filepath.Join(dir, "games", "HALF-LIFE 2")
	assert.Equal(t, onDisk, pathutil.Canonicalize(typed))
}

func TestCanonicalize_ExactCaseUnchanged(t *testing.T) {
	dir := t.TempDir()
	onDisk := filepath.Join(dir, "Portal")
	require.NoError(t, os.MkdirAll(onDisk, 0755))

	assert.Equal(t, onDisk, pathutil.Canonicalize(onDisk))
}

func TestCanonicalize_MissingPathReturnedAsGiven(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Games"), 0755))

	missing := filepath.Join(dir, "games", "nope") + string(filepath.Separator)
	assert.Equal(t, missing, pathutil.Canonicalize(missing))
}

func TestCanonicalize_Empty(t *testing.T) {
	assert.Equal(t, "", pathutil.Canonicalize(""))
}

func TestCanonicalize_Idempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Stardew Valley"), 0755))

	for _, p := range []string{
		filepath.Join(dir, "stardew valley"),
		filepath.Join(dir, "missing game"),
	} {
		once := pathutil.Canonicalize(p)
		assert.Equal(t, once, pathutil.Canonicalize(once), p)
	}
}

func TestCanonicalize_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Readme.TXT")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.Equal(t, file, pathutil.Canonicalize(filepath.Join(dir, strings.ToLower("Readme.TXT"))))
}

func TestExistsAndIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	assert.True(t, pathutil.Exists(dir))
	assert.True(t, pathutil.IsDir(dir))
	assert.True(t, pathutil.Exists(file))
	assert.False(t, pathutil.IsDir(file))
	assert.False(t, pathutil.Exists(filepath.Join(dir, "missing")))
}
