package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"glink/internal/catalog"
	"glink/internal/domain"
	"glink/internal/linker"
	"glink/internal/storage/config"
	"glink/internal/storage/db"
	"glink/internal/transfer"
)

// ServiceConfig holds configuration for the core service
type ServiceConfig struct {
	ConfigPath string // Path to config.yaml
	DataDir    string // Directory for the history journal
}

// Service loads configuration and the history journal and builds engines
type Service struct {
	config     *config.Config
	db         *db.DB
	configPath string
	log        zerolog.Logger
}

// NewService creates a new core service instance
func NewService(cfg ServiceConfig, log zerolog.Logger) (*Service, error) {
	appConfig, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	database, err := db.New(db.DefaultPath(cfg.DataDir))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &Service{
		config:     appConfig,
		db:         database,
		configPath: cfg.ConfigPath,
		log:        log,
	}, nil
}

// Close releases resources held by the service
func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Config returns the loaded configuration
func (s *Service) Config() *config.Config {
	return s.config
}

// SaveConfig writes the configuration back to the file it was loaded from
func (s *Service) SaveConfig() error {
	return s.config.Save(s.configPath)
}

// ConfigPath returns where the configuration lives
func (s *Service) ConfigPath() string {
	return s.configPath
}

// Platform returns the named platform
func (s *Service) Platform(name string) (*domain.Platform, error) {
	return s.config.Platform(name)
}

// PlatformForDir returns the platform owning dir, or "" if none does
func (s *Service) PlatformForDir(dir string) string {
	return s.config.PlatformForDir(dir)
}

// Platforms returns every configured platform sorted by name
func (s *Service) Platforms() ([]*domain.Platform, error) {
	var platforms []*domain.Platform
	for _, name := range s.config.PlatformNames() {
		p, err := s.config.Platform(name)
		if err != nil {
			return nil, err
		}
		platforms = append(platforms, p)
	}
	return platforms, nil
}

// History returns the most recent journal entries
func (s *Service) History(limit int) ([]domain.HistoryEntry, error) {
	return s.db.History(limit)
}

// EngineOptions are the operator-facing parts of an engine
type EngineOptions struct {
	Prompter Prompter
	Progress ProgressFactory
	Out      io.Writer
}

// NewEngine builds an engine for platform p that records into the journal
func (s *Service) NewEngine(p *domain.Platform, opts EngineOptions) *Engine {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Engine{
		Prompter: opts.Prompter,
		Mover:    transfer.New(),
		Linker:   linker.New(p.LinkMethod),
		Journal:  s.db,
		Progress: opts.Progress,
		Out:      out,
		Log:      s.log.With().Str("platform", p.Name).Logger(),
	}
}

// Request builds an engine request for p between the given location roles
func (s *Service) Request(p *domain.Platform, sourceRole, targetRole string) (Request, error) {
	source, target, err := config.Locations(p, sourceRole, targetRole)
	if err != nil {
		return Request{}, err
	}
	return Request{
		Platform:  p.Name,
		SourceDir: source,
		TargetDir: target,
		Ignore:    p.Ignore,
		PageSize:  DefaultPageSize,
	}, nil
}

// AllTargetGames lists "[platform] game" labels for every game sitting in the
// target location of any platform, for unlinking when no platform is known.
// Platforms missing either role are skipped.
func (s *Service) AllTargetGames(sourceRole, targetRole string) ([]string, error) {
	platforms, err := s.Platforms()
	if err != nil {
		return nil, err
	}

	var queries []catalog.PlatformQuery
	for _, p := range platforms {
		req, err := s.Request(p, sourceRole, targetRole)
		if err != nil {
			s.log.Debug().Err(err).Str("platform", p.Name).Msg("skipping platform")
			continue
		}
		queries = append(queries, catalog.PlatformQuery{
			Platform: p.Name,
			Query: catalog.Query{
				SourceDir: req.SourceDir,
				TargetDir: req.TargetDir,
				Reverse:   true,
				Ignore:    req.Ignore,
			},
		})
	}
	return catalog.FindAll(queries)
}

// GameState is where one game currently lives
type GameState struct {
	Name     string
	InSource bool
	InTarget bool
	Linked   bool                // The source entry is a link or junction
	Last     *domain.HistoryEntry // Newest journal entry, nil if never moved
}

// Status describes the state of the game
func (g GameState) Status() string {
	switch {
	case g.Linked && g.InTarget:
		return "linked"
	case g.Linked:
		return "broken link"
	case g.InSource && g.InTarget:
		return "conflict"
	case g.InSource:
		return "source"
	case g.InTarget:
		return "target"
	default:
		return "missing"
	}
}

// ListGames reports every game found in either location of req whose name
// contains query, sorted case-insensitively, with its newest journal entry.
func (s *Service) ListGames(req Request, query string) ([]GameState, error) {
	method := s.config.DefaultLinkMethod
	if p, err := s.config.Platform(req.Platform); err == nil {
		method = p.LinkMethod
	}
	lk := linker.New(method)

	states := make(map[string]*GameState)
	for _, leg := range []struct {
		dir    string
		source bool
	}{{req.SourceDir, true}, {req.TargetDir, false}} {
		names, err := catalog.Find(catalog.Query{
			SourceDir: leg.dir,
			TargetDir: leg.dir,
			Name:      query,
			Reverse:   true,
			Ignore:    req.Ignore,
		})
		if errors.Is(err, domain.ErrNoMatch) {
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, name := range names {
			key := strings.ToLower(name)
			st, ok := states[key]
			if !ok {
				st = &GameState{Name: name}
				states[key] = st
			}
			if leg.source {
				st.InSource = true
				st.Linked = isLinked(lk, filepath.Join(leg.dir, name), s.log)
			} else {
				st.InTarget = true
			}
		}
	}

	result := make([]GameState, 0, len(states))
	for _, st := range states {
		last, err := s.db.LastOperation(req.Platform, st.Name)
		if err != nil {
			return nil, fmt.Errorf("reading history of %s: %w", st.Name, err)
		}
		st.Last = last
		result = append(result, *st)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := strings.ToLower(result[i].Name), strings.ToLower(result[j].Name)
		if a != b {
			return a < b
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// isLinked reports whether path is a link. A path that cannot be inspected
// is listed as a real folder and the failure logged.
func isLinked(lk linker.Linker, path string, log zerolog.Logger) bool {
	linked, err := lk.IsLink(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("checking link")
		return false
	}
	return linked
}
