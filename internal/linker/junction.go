package linker

import "glink/internal/domain"

// JunctionLinker links game directories using directory junctions.
// Junctions need no elevation on Windows; other systems fall back to symlinks.
type JunctionLinker struct{}

// NewJunction creates a new junction linker
func NewJunction() *JunctionLinker {
	return &JunctionLinker{}
}

// Link creates a junction at link pointing to target
func (l *JunctionLinker) Link(target, link string) error {
	return createJunction(target, link)
}

// Unlink removes the junction at link
func (l *JunctionLinker) Unlink(link string) error {
	return removeLink(link)
}

// IsLink checks if path is a junction or symlink
func (l *JunctionLinker) IsLink(path string) (bool, error) {
	return isLink(path)
}

// Method returns the kind of link Link actually creates on this system
func (l *JunctionLinker) Method() domain.LinkMethod {
	return junctionMethod
}
