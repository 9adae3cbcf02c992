package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/giftring/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "giftring"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Giftring draws anonymous constraint-respecting pairings",
		Long:         `Giftring randomly pairs every participant in a roster with another, honoring forced and blocked pairs, and delivers each result anonymously.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.revealCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Options
// =============================================================================

// drawOpts holds the flags shared by every command that solves a pairing.
type drawOpts struct {
	seed      int64  // PRNG seed, 0 means current nanoseconds
	algorithm string // default, hamiltonian, or random
}

// registerDrawFlags wires the shared solver flags onto cmd.
func (o *drawOpts) register(cmd *cobra.Command) {
	cmd.Flags().Int64VarP(&o.seed, "seed", "s", 0, "seed the random source (0 = time-based)")
	cmd.Flags().StringVarP(&o.algorithm, "algorithm", "a", "default", "pairing algorithm: default, hamiltonian, random")
}

// effectiveSeed resolves the seed flag: zero means the current time.
func (o *drawOpts) effectiveSeed() int64 {
	if o.seed != 0 {
		return o.seed
	}
	return time.Now().UnixNano()
}

// =============================================================================
// Paths
// =============================================================================

// dataDir returns the data directory using the XDG standard
// (~/.local/share/giftring/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// defaultHistoryPath returns the default location of the draw history file.
func defaultHistoryPath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.json"), nil
}
