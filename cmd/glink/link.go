package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"glink/internal/catalog"
	"glink/internal/core"
	"glink/internal/domain"
	"glink/internal/prompt"
	"glink/internal/tui"
)

var (
	linkPlatform   string
	linkSource     string
	linkTarget     string
	linkReverse    bool
	linkCreateDirs bool
	linkExact      bool
	linkTUI        bool
)

func init() {
	rootCmd.Flags().StringVarP(&linkPlatform, "platform", "p", "", "platform from the config file (default: detected from the current directory)")
	rootCmd.Flags().StringVarP(&linkSource, "source", "s", "hdd", "location the game is moved away from")
	rootCmd.Flags().StringVarP(&linkTarget, "target", "t", "ssd", "location the game is moved to")
	rootCmd.Flags().BoolVarP(&linkReverse, "reverse", "r", false, "unlink: remove the junction and move the game back")
	rootCmd.Flags().BoolVarP(&linkCreateDirs, "create-dirs", "d", false, "create missing location directories without asking")
	rootCmd.Flags().BoolVarP(&linkExact, "exact", "e", false, "use the game name exactly as given, without searching")
	rootCmd.Flags().BoolVar(&linkTUI, "tui", false, "choose games with the full-screen picker")
}

// selection is the outcome of working out which platform to operate on
type selection struct {
	platform string
	game     string
	exact    bool
}

func runLink(cmd *cobra.Command, args []string) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	line := prompt.NewTerminal(stdin, stdout)
	var prompter core.Prompter = line
	if linkTUI {
		prompter = tui.NewPrompter(stdin, stdout, service.Config().Keybindings, line)
	}

	sel, err := resolvePlatform(service, prompter, query)
	if err != nil {
		return err
	}

	p, err := service.Platform(sel.platform)
	if err != nil {
		return err
	}
	req, err := service.Request(p, linkSource, linkTarget)
	if err != nil {
		return err
	}
	req.Query = sel.game
	req.Exact = linkExact || sel.exact
	req.Reverse = linkReverse
	req.CreateDirs = linkCreateDirs
	req.AssumeYes = assumeYes

	engine := service.NewEngine(p, core.EngineOptions{
		Prompter: prompter,
		Progress: newProgressBar,
		Out:      stdout,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := engine.Run(ctx, req)
	if err != nil {
		return err
	}

	if res.Bytes > 0 {
		fmt.Fprintf(stdout, "Moved %s\n", humanize.Bytes(uint64(res.Bytes)))
	}
	return nil
}

// resolvePlatform picks the platform to work on: the --platform flag, else
// the platform owning the current directory, else the operator chooses. When
// unlinking without a platform, the operator picks among every linked game.
func resolvePlatform(service *core.Service, prompter core.Prompter, query string) (selection, error) {
	sel := selection{platform: linkPlatform, game: query}

	if sel.platform != "" {
		if _, err := service.Platform(sel.platform); err != nil {
			return sel, err
		}
		return sel, nil
	}

	if sel.platform = currentPlatform(service); sel.platform != "" {
		logger.Debug().Str("platform", sel.platform).Msg("platform detected from current directory")
		return sel, nil
	}

	if linkReverse {
		labels, err := service.AllTargetGames(linkSource, linkTarget)
		if errors.Is(err, domain.ErrNoMatch) {
			return sel, fmt.Errorf("%w in the %s location of any platform", domain.ErrNoMatch, linkTarget)
		}
		if err != nil {
			return sel, err
		}

		label, err := prompter.Choose("What game? ", labels, core.DefaultPageSize)
		if err != nil {
			return sel, err
		}
		platform, game, ok := catalog.ParseLabel(label)
		if !ok {
			return sel, fmt.Errorf("unexpected choice %q", label)
		}
		return selection{platform: platform, game: game, exact: true}, nil
	}

	names := service.Config().PlatformNames()
	if len(names) == 0 {
		return sel, fmt.Errorf("%w: no platforms in %s", domain.ErrInvalidConfig, service.ConfigPath())
	}
	platform, err := prompter.Choose("Choose a platform: ", names, 0)
	if err != nil {
		return sel, err
	}
	sel.platform = platform
	return sel, nil
}

// currentPlatform returns the platform owning the working directory, or ""
func currentPlatform(service *core.Service) string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return service.PlatformForDir(cwd)
}
