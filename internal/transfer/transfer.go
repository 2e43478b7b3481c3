// Package transfer moves and copies game directories while reporting progress.
//
// Progress is reported through a callback handed to each call; nothing is
// installed process-wide, so concurrent or consecutive transfers never see
// each other's reporting.
package transfer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"glink/internal/domain"
)

// DefaultBufferSize is the chunk size used for file copies
const DefaultBufferSize = 1000 * 1024

// Copier moves or copies a file or directory tree
type Copier struct {
	BufferSize int

	rename func(oldpath, newpath string) error
}

// New creates a copier with the default buffer size
func New() *Copier {
	return &Copier{BufferSize: DefaultBufferSize, rename: os.Rename}
}

// Size returns the number of bytes a transfer of path will move: the size of
// a single file, or the sum of all regular files below a directory.
func Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return info.Size(), nil
	}

	var total int64
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		total += fi.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("sizing %s: %w", path, err)
	}
	return total, nil
}

// Move relocates src to dst and returns dst. A rename is tried first; only
// when dst is on another volume is the tree copied and src removed afterwards.
// Any other rename failure is returned with src untouched.
//
// fn may be nil. A failed copy leaves whatever was already written at dst.
func (c *Copier) Move(src, dst string, fn domain.ProgressFunc) (string, error) {
	if err := ensureAbsent(dst); err != nil {
		return "", err
	}

	total, err := Size(src)
	if err != nil {
		return "", err
	}
	t := newTracker(total, fn)

	rename := c.rename
	if rename == nil {
		rename = os.Rename
	}
	err = rename(src, dst)
	if err == nil {
		t.done()
		return dst, nil
	}
	if !isCrossDevice(err) {
		return "", fmt.Errorf("renaming %s: %w", src, err)
	}

	if err := c.copyTree(src, dst, t); err != nil {
		return "", err
	}
	if err := os.RemoveAll(src); err != nil {
		return "", fmt.Errorf("removing %s after copy: %w", src, err)
	}
	return dst, nil
}

func ensureAbsent(dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return &fs.PathError{Op: "move", Path: dst, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (c *Copier) copyTree(src, dst string, t *tracker) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return c.copyEntry(src, dst, info, t)
	}

	// Directory modification times are restored last; writing files into a
	// directory would bump them again.
	var dirs []string
	err = filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		fi, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := os.Mkdir(target, fi.Mode().Perm()|0700); err != nil {
				return err
			}
			dirs = append(dirs, p)
			return nil
		}
		return c.copyEntry(p, target, fi, t)
	})
	if err != nil {
		return err
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		rel, _ := filepath.Rel(src, dirs[i])
		fi, err := os.Lstat(dirs[i])
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if err := os.Chmod(target, fi.Mode().Perm()); err != nil {
			return err
		}
		if err := os.Chtimes(target, fi.ModTime(), fi.ModTime()); err != nil {
			return err
		}
	}
	return nil
}

func (c *Copier) copyEntry(src, dst string, info fs.FileInfo, t *tracker) error {
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		link, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(link, dst)
	case info.Mode().IsRegular():
		return c.copyFile(src, dst, info, t)
	default:
		return fmt.Errorf("copying %s: unsupported file type %s", src, info.Mode().Type())
	}
}

func (c *Copier) copyFile(src, dst string, info fs.FileInfo, t *tracker) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	size := c.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	buf := make([]byte, size)

	t.file(src)
	// Hide *os.File's WriterTo so the copy goes through buf chunk by chunk.
	reader := struct{ io.Reader }{in}
	if _, err := io.CopyBuffer(&countingWriter{w: out, t: t}, reader, buf); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
