package linker_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"glink/internal/domain"
	"glink/internal/linker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutSymlinks(t *testing.T, l linker.Linker) {
	t.Helper()
	if runtime.GOOS == "windows" && l.Method() == domain.LinkSymlink {
		t.Skip("symlinks need privileges on windows")
	}
}

func linkers() []linker.Linker {
	return []linker.Linker{linker.NewJunction(), linker.NewSymlink()}
}

func TestLinker_Link(t *testing.T) {
	for _, l := range linkers() {
		t.Run(l.Method().String(), func(t *testing.T) {
			skipWithoutSymlinks(t, l)
			dir := t.TempDir()
			target := filepath.Join(dir, "ssd", "Game")
			link := filepath.Join(dir, "hdd", "Game")
			require.NoError(t, os.MkdirAll(target, 0755))
			require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
			require.NoError(t, os.WriteFile(filepath.Join(target, "game.exe"), []byte("MZ"), 0644))

			require.NoError(t, l.Link(target, link))

			isLink, err := l.IsLink(link)
			require.NoError(t, err)
			assert.True(t, isLink)

			// Content is reachable through the link
			data, err := os.ReadFile(filepath.Join(link, "game.exe"))
			require.NoError(t, err)
			assert.Equal(t, "MZ", string(data))
		})
	}
}

func TestLinker_UnlinkKeepsTarget(t *testing.T) {
	for _, l := range linkers() {
		t.Run(l.Method().String(), func(t *testing.T) {
			skipWithoutSymlinks(t, l)
			dir := t.TempDir()
			target := filepath.Join(dir, "target")
			link := filepath.Join(dir, "link")
			require.NoError(t, os.MkdirAll(target, 0755))
			require.NoError(t, os.WriteFile(filepath.Join(target, "save.dat"), []byte("x"), 0644))
			require.NoError(t, l.Link(target, link))

			require.NoError(t, l.Unlink(link))

			_, err := os.Lstat(link)
			assert.True(t, os.IsNotExist(err))
			_, err = os.Stat(filepath.Join(target, "save.dat"))
			assert.NoError(t, err)
		})
	}
}

func TestLinker_UnlinkRefusesPopulatedDirectory(t *testing.T) {
	dir := t.TempDir()
	gameDir := filepath.Join(dir, "Game")
	require.NoError(t, os.MkdirAll(gameDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(gameDir, "game.exe"), []byte("MZ"), 0644))

	err := linker.NewJunction().Unlink(gameDir)
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(gameDir, "game.exe"))
	assert.NoError(t, err)
}

func TestLinker_UnlinkRemovesEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "Game")
	require.NoError(t, os.MkdirAll(empty, 0755))

	require.NoError(t, linker.NewJunction().Unlink(empty))
	_, err := os.Stat(empty)
	assert.True(t, os.IsNotExist(err))
}

func TestLinker_UnlinkRefusesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Game")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	err := linker.NewJunction().Unlink(file)
	assert.ErrorIs(t, err, domain.ErrNotDirectory)
}

func TestLinker_IsLinkOnRealDirectory(t *testing.T) {
	isLink, err := linker.NewJunction().IsLink(t.TempDir())
	require.NoError(t, err)
	assert.False(t, isLink)

	isLink, err = linker.NewJunction().IsLink(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.False(t, isLink)
}

func TestNew_ReturnsCorrectLinker(t *testing.T) {
	assert.IsType(t, &linker.JunctionLinker{}, linker.New(domain.LinkJunction))
	assert.IsType(t, &linker.SymlinkLinker{}, linker.New(domain.LinkSymlink))
	assert.Equal(t, domain.LinkSymlink, linker.New(domain.LinkSymlink).Method())
}

func TestJunction_MethodMatchesCreatedLink(t *testing.T) {
	l := linker.NewJunction()
	target := t.TempDir()
	link := filepath.Join(t.TempDir(), "game")
	require.NoError(t, l.Link(target, link))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	isSymlink := info.Mode()&os.ModeSymlink != 0

	if runtime.GOOS == "windows" {
		assert.Equal(t, domain.LinkJunction, l.Method())
		assert.False(t, isSymlink)
	} else {
		assert.Equal(t, domain.LinkSymlink, l.Method())
		assert.True(t, isSymlink)
	}
}
