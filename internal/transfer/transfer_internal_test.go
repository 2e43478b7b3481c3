package transfer

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"
	"time"

	"glink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crossDevice makes every rename fail the way it does between volumes
func crossDevice(oldpath, newpath string) error {
	return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
}

func TestMove_FallsBackToCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "hdd", "Game")
	dst := filepath.Join(dir, "ssd", "Game")
	payload := bytes.Repeat([]byte{1, 2, 3, 4, 5, 6, 7}, 300_000)
	require.NoError(t, os.MkdirAll(filepath.Join(src, "bin"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "bin", "game.bin"), payload, 0644))
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0755))

	old := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(src, "bin", "game.bin"), old, old))

	c := New()
	c.rename = crossDevice

	var events []domain.TransferProgress
	_, err := c.Move(src, dst, func(p domain.TransferProgress) { events = append(events, p) })
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dst, "bin", "game.bin"))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, got))

	info, err := os.Stat(filepath.Join(dst, "bin", "game.bin"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))

	_, err = os.Stat(src)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	// 2.1 MB through a 1000 KiB buffer: start event plus three chunks
	require.Len(t, events, 4)
	assert.Equal(t, int64(len(payload)), events[3].Transferred)
	assert.Equal(t, filepath.Join(src, "bin", "game.bin"), events[3].CurrentFile)
}

func TestMove_CopyPreservesSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "real.txt"), []byte("x"), 0644))
	require.NoError(t, os.Symlink("real.txt", filepath.Join(src, "alias.txt")))

	c := New()
	c.rename = crossDevice
	_, err := c.Move(src, dst, nil)
	require.NoError(t, err)

	link, err := os.Readlink(filepath.Join(dst, "alias.txt"))
	require.NoError(t, err)
	assert.Equal(t, "real.txt", link)
}

func TestMove_CopyFailureLeavesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "f"), []byte("x"), 0644))

	c := New()
	c.rename = crossDevice

	// Parent of the destination does not exist, so the copy fails up front.
	_, err := c.Move(src, filepath.Join(dir, "missing", "dst"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = os.Stat(filepath.Join(src, "f"))
	assert.NoError(t, err)
}

func TestMove_CopyReportsEveryChunk(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "data"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "game.exe"), bytes.Repeat([]byte("e"), 10_000), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "data", "level1.pak"), bytes.Repeat([]byte("p"), 20_000), 0644))

	c := New()
	c.BufferSize = 4096
	c.rename = crossDevice

	var events []domain.TransferProgress
	_, err := c.Move(src, dst, func(p domain.TransferProgress) { events = append(events, p) })
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.Equal(t, int64(30_000), events[0].Total)
	assert.Zero(t, events[0].Transferred)
	assert.Empty(t, events[0].CurrentFile)

	var prev int64
	for _, e := range events[1:] {
		assert.GreaterOrEqual(t, e.Transferred, prev)
		assert.LessOrEqual(t, e.Transferred-prev, int64(4096))
		assert.NotEmpty(t, e.CurrentFile)
		prev = e.Transferred
	}
	assert.Equal(t, int64(30_000), prev)
	assert.FileExists(t, filepath.Join(dst, "data", "level1.pak"))
	assert.NoDirExists(t, src)
}

func TestMove_OtherRenameFailureKeepsSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "f"), []byte("x"), 0644))

	c := New()
	c.rename = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrPermission}
	}

	var events []domain.TransferProgress
	_, err := c.Move(src, dst, func(p domain.TransferProgress) { events = append(events, p) })
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrPermission)

	assert.FileExists(t, filepath.Join(src, "f"))
	_, err = os.Lstat(dst)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	for _, e := range events {
		assert.Zero(t, e.Transferred)
	}
}

func TestIsCrossDevice(t *testing.T) {
	assert.True(t, isCrossDevice(crossDevice("a", "b")))
	assert.False(t, isCrossDevice(&os.LinkError{Op: "rename", Old: "a", New: "b", Err: fs.ErrPermission}))
	assert.False(t, isCrossDevice(errors.New("boom")))
}
