//go:build !windows

package linker

import (
	"fmt"
	"os"

	"glink/internal/domain"
)

// Junctions exist only on Windows; a symlink stands in for them elsewhere
const junctionMethod = domain.LinkSymlink

func createJunction(target, link string) error {
	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("creating junction: %w", err)
	}
	return nil
}
