// flapper is a side-scrolling reflex runner for the terminal.
//
// Usage:
//
//	flapper                  - Start with the difficulty menu
//	flapper play             - Play, optionally with a fixed difficulty
//	flapper scores           - Show the run history
//	flapper config           - Print the default configuration
//	flapper sim              - Run the engine headless with an autopilot
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.flapper/flapper.db)
//	--log-file <path>  - Set log file (default: ~/.flapper/flapper.log)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flapper/internal/core"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flapper",
	Short: "Flapper - a side-scrolling reflex runner for your terminal",
	Long: `Flapper is a one-button reflex game: jump over the obstacles
scrolling towards you, and don't hit the sky.

Available commands:
  play     - Play (menu unless --difficulty is given)
  scores   - View the run history
  config   - Print the default configuration
  sim      - Run the engine headless with an autopilot

Examples:
  flapper
  flapper play --difficulty hard
  flapper scores
  flapper sim --frames 36000`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flapper/flapper.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.flapper/flapper.log", "Path to log file (empty disables logging)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log phase transitions and other debug output")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(simCmd)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// openLogger opens the log file named by --log-file. The terminal belongs
// to the game, so nothing is logged to stdout or stderr.
func openLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "flapper",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { _ = f.Close() }
}

// runtimeConfig builds the runtime config from the global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
