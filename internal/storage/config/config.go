package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"glink/internal/domain"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file inside the config directory
const FileName = "config.yaml"

// Config holds global settings and the configured platforms
type Config struct {
	DefaultLinkMethod domain.LinkMethod         `yaml:"-"`
	LinkMethodStr     string                    `yaml:"link_method,omitempty"`
	Keybindings       string                    `yaml:"keybindings,omitempty"`
	Platforms         map[string]PlatformConfig `yaml:"platforms"`
}

// PlatformConfig is the YAML representation of a platform
type PlatformConfig struct {
	Dirs       map[string]string `yaml:"dirs"`
	Ignore     []string          `yaml:"ignore,omitempty"`
	LinkMethod string            `yaml:"link_method,omitempty"`
}

// DefaultPath returns the config file path inside configDir
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, FileName)
}

// Load reads configuration from path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		DefaultLinkMethod: domain.LinkJunction,
		Keybindings:       "vim",
		Platforms:         make(map[string]PlatformConfig),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // Return defaults
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.LinkMethodStr != "" {
		cfg.DefaultLinkMethod = domain.ParseLinkMethod(cfg.LinkMethodStr)
	}
	if cfg.Platforms == nil {
		cfg.Platforms = make(map[string]PlatformConfig)
	}

	return cfg, nil
}

// Save writes configuration to path
func (c *Config) Save(path string) error {
	c.LinkMethodStr = c.DefaultLinkMethod.String()

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// PlatformNames returns the configured platform names, case-insensitively sorted
func (c *Config) PlatformNames() []string {
	names := make([]string, 0, len(c.Platforms))
	for name := range c.Platforms {
		names = append(names, name)
	}
	domain.SortFold(names)
	return names
}

// Platform returns the named platform with its directories expanded and cleaned
func (c *Config) Platform(name string) (*domain.Platform, error) {
	pc, ok := c.Platforms[name]
	if !ok {
		for candidate, cfg := range c.Platforms {
			if strings.EqualFold(candidate, name) {
				name, pc, ok = candidate, cfg, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s not in config file", domain.ErrPlatformNotFound, name)
	}

	p := &domain.Platform{
		Name:       name,
		Dirs:       make(map[string]string, len(pc.Dirs)),
		Ignore:     domain.NewIgnoreSet(pc.Ignore...),
		LinkMethod: c.DefaultLinkMethod,
	}
	for role, dir := range pc.Dirs {
		p.Dirs[role] = filepath.Clean(ExpandPath(dir))
	}
	if pc.LinkMethod != "" {
		p.LinkMethod = domain.ParseLinkMethod(pc.LinkMethod)
	}
	return p, nil
}

// PlatformForDir returns the platform owning dir: one of its location
// directories is dir itself or one of dir's parents. Empty if none matches.
func (c *Config) PlatformForDir(dir string) string {
	dir = strings.ToLower(filepath.Clean(dir))
	sep := string(filepath.Separator)

	for _, name := range c.PlatformNames() {
		for _, locDir := range c.Platforms[name].Dirs {
			loc := strings.ToLower(filepath.Clean(ExpandPath(locDir)))
			if dir == loc || strings.HasPrefix(dir, strings.TrimSuffix(loc, sep)+sep) {
				return name
			}
		}
	}
	return ""
}

// Locations resolves the source and target directories of p for the given
// location roles and validates the pair.
func Locations(p *domain.Platform, sourceRole, targetRole string) (string, string, error) {
	source, ok := p.Dir(sourceRole)
	if !ok {
		return "", "", fmt.Errorf("%w: %s not in %s config", domain.ErrInvalidConfig, sourceRole, p.Name)
	}
	target, ok := p.Dir(targetRole)
	if !ok {
		return "", "", fmt.Errorf("%w: %s not in %s config", domain.ErrInvalidConfig, targetRole, p.Name)
	}

	for _, dir := range p.Dirs {
		if strings.Contains(strings.ToLower(dir), "windowsapps") {
			return "", "", fmt.Errorf("%w: linking Microsoft Store apps is not supported; use the built-in app move under Windows settings", domain.ErrInvalidConfig)
		}
	}

	if strings.EqualFold(source, target) {
		return "", "", fmt.Errorf("%w: source path and target path cannot be the same", domain.ErrInvalidConfig)
	}

	return source, target, nil
}
