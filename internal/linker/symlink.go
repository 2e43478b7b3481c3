package linker

import (
	"fmt"
	"os"

	"glink/internal/domain"
)

// SymlinkLinker links game directories using symbolic links
type SymlinkLinker struct{}

// NewSymlink creates a new symlink linker
func NewSymlink() *SymlinkLinker {
	return &SymlinkLinker{}
}

// Link creates a symlink at link pointing to target
func (l *SymlinkLinker) Link(target, link string) error {
	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("creating symlink: %w", err)
	}
	return nil
}

// Unlink removes the symlink at link
func (l *SymlinkLinker) Unlink(link string) error {
	return removeLink(link)
}

// IsLink checks if path is a symlink
func (l *SymlinkLinker) IsLink(path string) (bool, error) {
	return isLink(path)
}

// Method returns the link method
func (l *SymlinkLinker) Method() domain.LinkMethod {
	return domain.LinkSymlink
}
