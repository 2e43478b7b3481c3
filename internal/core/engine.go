// Package core relocates game directories between platform locations.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"glink/internal/catalog"
	"glink/internal/domain"
	"glink/internal/linker"
	"glink/internal/pathutil"
	"glink/internal/prompt"
)

// DefaultPageSize is how many games the chooser shows at once
const DefaultPageSize = 10

// Prompter asks the operator to choose or confirm
type Prompter interface {
	Choose(prompt string, choices []string, pageSize int) (string, error)
	Confirm(question string, def prompt.Default) (bool, error)
}

// Mover relocates a directory tree, reporting progress to fn
type Mover interface {
	Move(src, dst string, fn domain.ProgressFunc) (string, error)
}

// Journal records completed operations
type Journal interface {
	RecordOperation(entry *domain.HistoryEntry) error
}

// ProgressFactory returns the callback for one move. description names the
// game being moved.
type ProgressFactory func(description string) domain.ProgressFunc

// Request describes one link or unlink invocation
type Request struct {
	Platform   string
	SourceDir  string
	TargetDir  string
	Ignore     domain.IgnoreSet
	Query      string // Game name or part of it
	Exact      bool   // Query is the full game name; no scan
	Reverse    bool   // Unlink instead of link
	CreateDirs bool   // Create missing location directories without asking
	AssumeYes  bool   // Skip the final confirmation
	PageSize   int
}

// Direction returns the direction the request moves the game
func (r Request) Direction() domain.Direction {
	if r.Reverse {
		return domain.DirectionUnlink
	}
	return domain.DirectionLink
}

// Result describes a completed operation
type Result struct {
	Operation domain.LinkOperation
	Action    domain.Action
	Bytes     int64
}

// Engine runs link and unlink operations
type Engine struct {
	Prompter Prompter
	Mover    Mover
	Linker   linker.Linker
	Journal  Journal         // Optional
	Progress ProgressFactory // Optional
	Out      io.Writer
	Log      zerolog.Logger
}

// Run resolves the game for req, confirms with the operator and relocates it.
// Declining any prompt returns domain.ErrCancelled with nothing changed.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	if req.PageSize == 0 {
		req.PageSize = DefaultPageSize
	}

	if err := e.prepareDirs(req); err != nil {
		return nil, err
	}

	game, err := e.resolveGame(req)
	if err != nil {
		return nil, err
	}

	op := fixPaths(req.SourceDir, req.TargetDir, game, req.Direction())
	e.Log.Debug().
		Str("game", op.Game).
		Str("source", op.SourcePath).
		Str("target", op.TargetPath).
		Str("direction", op.Direction.String()).
		Msg("resolved operation")

	if !req.AssumeYes {
		ok, err := e.Prompter.Confirm(fmt.Sprintf("Are you sure you want to %s %q", op.Direction, op.Game), prompt.DefaultNo)
		if err != nil {
			return nil, err
		}
		if !ok {
			fmt.Fprintln(e.Out, "Exiting...")
			return nil, domain.ErrCancelled
		}
	}

	action, err := Plan(pathutil.Exists(op.SourcePath), pathutil.Exists(op.TargetPath), op.Direction)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bytes, err := e.execute(op, action)
	if err != nil {
		return nil, err
	}

	res := &Result{Operation: op, Action: action, Bytes: bytes}
	e.record(req.Platform, res)
	return res, nil
}

// prepareDirs makes sure both location directories exist
func (e *Engine) prepareDirs(req Request) error {
	for _, dir := range []string{req.SourceDir, req.TargetDir} {
		if pathutil.Exists(dir) {
			continue
		}

		if !req.CreateDirs {
			fmt.Fprintf(e.Out, "%q does not exist.\n", dir)
			ok, err := e.Prompter.Confirm("Do you want to create it", prompt.DefaultYes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(e.Out, "Exiting...")
				return domain.ErrCancelled
			}
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating location: %w", err)
		}
		e.Log.Info().Str("dir", dir).Msg("created location directory")
	}
	return nil
}

// resolveGame turns the request's query into exactly one game name
func (e *Engine) resolveGame(req Request) (string, error) {
	if req.Exact {
		if req.Query == "" {
			return "", fmt.Errorf("%w: exact match requested but no game name supplied", domain.ErrInvalidConfig)
		}
		if !isGameName(req.Query) {
			return "", fmt.Errorf("%w: %q is not a game folder name", domain.ErrInvalidConfig, req.Query)
		}
		return req.Query, nil
	}

	games, err := catalog.Find(catalog.Query{
		SourceDir: req.SourceDir,
		TargetDir: req.TargetDir,
		Name:      req.Query,
		Reverse:   req.Reverse,
		Ignore:    req.Ignore,
	})
	if errors.Is(err, domain.ErrNoMatch) {
		if req.Query != "" {
			return "", fmt.Errorf("%w containing %q", domain.ErrNoMatch, req.Query)
		}
		return "", fmt.Errorf("%w for %q platform", domain.ErrNoMatch, req.Platform)
	}
	if err != nil {
		return "", err
	}

	if len(games) == 1 {
		return games[0], nil
	}

	if req.Query != "" {
		fmt.Fprintf(e.Out, "Found %d games containing %q\n", len(games), req.Query)
	} else {
		fmt.Fprintf(e.Out, "Found %d games for %q platform\n", len(games), req.Platform)
	}
	return e.Prompter.Choose("What game? ", games, req.PageSize)
}

// isGameName reports whether name can only refer to a folder directly
// inside a location
func isGameName(name string) bool {
	if name == "." || name == ".." || filepath.Base(name) != name {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.VolumeName(name) == ""
}

// fixPaths builds the operation with paths in their on-disk case. When only
// one leg exists, the other is named after it so both agree on the game's case.
func fixPaths(sourceDir, targetDir, game string, direction domain.Direction) domain.LinkOperation {
	sourceDir = pathutil.Canonicalize(sourceDir)
	targetDir = pathutil.Canonicalize(targetDir)

	op := domain.LinkOperation{
		Game:       game,
		SourcePath: pathutil.Canonicalize(filepath.Join(sourceDir, game)),
		TargetPath: pathutil.Canonicalize(filepath.Join(targetDir, game)),
		Direction:  direction,
	}

	sourceExists := pathutil.Exists(op.SourcePath)
	targetExists := pathutil.Exists(op.TargetPath)

	switch {
	case sourceExists && !targetExists:
		op.Game = filepath.Base(op.SourcePath)
		op.TargetPath = filepath.Join(targetDir, op.Game)
	case targetExists && !sourceExists:
		op.Game = filepath.Base(op.TargetPath)
		op.SourcePath = filepath.Join(sourceDir, op.Game)
	case sourceExists:
		op.Game = filepath.Base(op.SourcePath)
	}
	return op
}

// execute carries out action and returns the number of bytes moved
func (e *Engine) execute(op domain.LinkOperation, action domain.Action) (int64, error) {
	noun := linkNoun(e.Linker.Method())

	switch action {
	case domain.ActionMoveAndLink:
		if !pathutil.IsDir(op.SourcePath) {
			return 0, fmt.Errorf("%s: %w", op.SourcePath, domain.ErrNotDirectory)
		}
		moved, err := e.move(op.Game, op.SourcePath, op.TargetPath)
		if err != nil {
			return 0, err
		}
		if err := e.link(op); err != nil {
			return moved, err
		}
		fmt.Fprintf(e.Out, "%s created: %s ==> %s\n", noun, op.SourcePath, op.TargetPath)
		return moved, nil

	case domain.ActionLinkOnly:
		if err := e.link(op); err != nil {
			return 0, err
		}
		fmt.Fprintf(e.Out, "%s created: %s ==> %s\n", noun, op.SourcePath, op.TargetPath)
		return 0, nil

	case domain.ActionUnlinkAndRestore:
		// Unlink refuses populated real directories, so game data is never removed here
		if err := e.Linker.Unlink(op.SourcePath); err != nil {
			return 0, err
		}
		fallthrough

	case domain.ActionRestore:
		moved, err := e.move(op.Game, op.TargetPath, op.SourcePath)
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(e.Out, "%s removed: %s <== %s\n", noun, op.SourcePath, op.TargetPath)
		return moved, nil
	}

	return 0, fmt.Errorf("unsupported action %s", action)
}

func (e *Engine) link(op domain.LinkOperation) error {
	if !pathutil.IsDir(op.TargetPath) {
		return fmt.Errorf("%s: %w", op.TargetPath, domain.ErrNotDirectory)
	}
	if err := e.Linker.Link(op.TargetPath, op.SourcePath); err != nil {
		return fmt.Errorf("linking %s: %w", op.Game, err)
	}
	return nil
}

func (e *Engine) move(game, src, dst string) (int64, error) {
	var fn domain.ProgressFunc
	if e.Progress != nil {
		fn = e.Progress(game)
	}

	var moved int64
	track := func(p domain.TransferProgress) {
		moved = p.Transferred
		if fn != nil {
			fn(p)
		}
	}

	e.Log.Info().Str("from", src).Str("to", dst).Msg("moving game")
	if _, err := e.Mover.Move(src, dst, track); err != nil {
		return moved, fmt.Errorf("moving %s: %w", game, err)
	}
	return moved, nil
}

func (e *Engine) record(platform string, res *Result) {
	if e.Journal == nil {
		return
	}

	entry := &domain.HistoryEntry{
		Platform:   platform,
		Game:       res.Operation.Game,
		SourcePath: res.Operation.SourcePath,
		TargetPath: res.Operation.TargetPath,
		Direction:  res.Operation.Direction,
		Action:     res.Action,
		Bytes:      res.Bytes,
	}
	if err := e.Journal.RecordOperation(entry); err != nil {
		e.Log.Warn().Err(err).Str("game", entry.Game).Msg("failed to record history")
	}
}

func linkNoun(method domain.LinkMethod) string {
	s := method.String()
	if s == "" {
		return "Link"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
