package linker

import (
	"fmt"
	"io/fs"
	"os"

	"glink/internal/domain"
)

// Linker points an original game location at its relocated directory
type Linker interface {
	// Link creates link so that it refers to the directory target
	Link(target, link string) error
	// Unlink removes a link created by Link. Populated real directories are refused.
	Unlink(link string) error
	IsLink(path string) (bool, error)
	// Method reports the kind of link Link creates on this system
	Method() domain.LinkMethod
}

// New creates a linker for the given method
func New(method domain.LinkMethod) Linker {
	switch method {
	case domain.LinkSymlink:
		return NewSymlink()
	default:
		return NewJunction()
	}
}

// removeLink deletes a link, or an empty directory left in its place.
// os.Remove refuses non-empty directories, so real game data is never deleted here.
func removeLink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("checking link: %w", err)
	}
	if info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, domain.ErrNotDirectory)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing link: %w", err)
	}
	return nil
}

// isLink reports whether path is a symlink or junction, whatever method made it
func isLink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	// Junctions are reported as irregular files since Go 1.23
	return info.Mode()&(fs.ModeSymlink|fs.ModeIrregular) != 0, nil
}
