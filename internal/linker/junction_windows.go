//go:build windows

package linker

import (
	"fmt"
	"os/exec"
	"strings"

	"glink/internal/domain"
)

const junctionMethod = domain.LinkJunction

func createJunction(target, link string) error {
	cmd := exec.Command("cmd", "/c", "mklink", "/J", link, target)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("creating junction: %w (%s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}
