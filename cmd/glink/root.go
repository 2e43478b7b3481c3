package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"glink/internal/core"
	"glink/internal/domain"
	"glink/internal/logging"
	"glink/internal/storage/config"
)

var (
	version = "0.3.0"

	// Global flags
	configPath string
	dataDir    string
	verbosity  int
	noColor    bool
	assumeYes  bool

	// Swapped by tests
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	logger = zerolog.Nop()
)

// rootCmd links a game when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "glink [game]",
	Short: "Move game folders between drives and leave a junction behind",
	Long: `glink moves a game folder from one configured location of a platform
(for example a hard disk) to another (for example an SSD) and leaves a
directory junction at the original path, so launchers keep finding the game.
With --reverse the junction is removed and the game moved back.

Platforms and their locations are read from ~/.config/glink/config.yaml.

Examples:
  glink portal                 # link a Steam game containing "portal"
  glink -p gog -e "Quake"      # link exactly "Quake" on the gog platform
  glink -r                     # choose a linked game to move back`,
	Args:              cobra.MaximumNArgs(1),
	Version:           version,
	SilenceUsage:      true, // Runtime errors should not print usage
	SilenceErrors:     true, // We handle error output in Execute()
	PersistentPreRunE: setupLogging,
	RunE:              runLink,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/glink/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory for the history journal (default: ~/.local/share/glink)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "verbose output (repeat for more)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for final confirmation")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logging.Setup(verbosity, stderr, !colorEnabled())
	logger = logging.GetLogger("cli")
	return nil
}

// colorEnabled returns true if colored output should be used (respects --no-color and NO_COLOR env).
// NO_COLOR: if set (any value), color is disabled per https://no-color.org
func colorEnabled() bool {
	if noColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return true
}

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

// colorGreen returns s with green ANSI when color is enabled, otherwise s.
func colorGreen(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiGreen + s + ansiReset
}

// colorRed returns s with red ANSI when color is enabled, otherwise s.
func colorRed(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiRed + s + ansiReset
}

// colorYellow returns s with yellow ANSI when color is enabled, otherwise s.
func colorYellow(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiYellow + s + ansiReset
}

// exitCode maps a command error to the process exit code: 0 success,
// 1 error, 2 cancelled by the operator.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrCancelled):
		return 2
	default:
		return 1
	}
}

// Execute runs the root command and exits with the code from exitCode
func Execute() {
	err := rootCmd.Execute()
	code := exitCode(err)
	if code == 1 {
		fmt.Fprintf(stderr, "%s %v\n", colorRed("Error:"), err)
	}
	if code != 0 {
		os.Exit(code)
	}
}

// getServiceConfig returns the service configuration with defaults applied
func getServiceConfig() (core.ServiceConfig, error) {
	cfg := core.ServiceConfig{
		ConfigPath: configPath,
		DataDir:    dataDir,
	}

	if cfg.ConfigPath != "" {
		path, err := config.ParseConfigPath(cfg.ConfigPath)
		if err != nil {
			return core.ServiceConfig{}, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
		}
		cfg.ConfigPath = path
	}

	if cfg.ConfigPath == "" || cfg.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return core.ServiceConfig{}, fmt.Errorf("home directory: %w", err)
		}
		if cfg.ConfigPath == "" {
			cfg.ConfigPath = config.DefaultPath(filepath.Join(homeDir, ".config", "glink"))
		}
		if cfg.DataDir == "" {
			cfg.DataDir = filepath.Join(homeDir, ".local", "share", "glink")
		}
	}

	cfg.DataDir = config.ExpandPath(cfg.DataDir)
	return cfg, nil
}

// initService creates and initializes the core service
func initService() (*core.Service, error) {
	cfg, err := getServiceConfig()
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("config", cfg.ConfigPath).Str("data", cfg.DataDir).Msg("initializing service")
	return core.NewService(cfg, logging.GetLogger("core"))
}
