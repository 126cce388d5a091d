// echoisles is a rhythm exploration game for the terminal: restore each
// island's melody by decoding the echoes hidden on it.
//
// Usage:
//
//	echoisles play             - Play locally
//	echoisles serve            - Start SSH server for remote play
//	echoisles islands          - List the island catalog
//	echoisles lore <island>    - Request one lore fragment
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible levels
//	--config <path>      - Tuning YAML override
//	--islands <path>     - Island catalog YAML override
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/echo-isles/internal/catalog"
	"github.com/vovakirdan/echo-isles/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagIslands  string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "echoisles",
	Short: "Echo Isles - restore the island melodies",
	Long: `Echo Isles is a real-time exploration game played in the terminal.

Walk each island in time with its beat, pulse the scanner to reveal
hidden treasures, decode their echoes and step through the portal once
the island is restored.

Available commands:
  play     - Play locally
  serve    - Start SSH server for remote play
  islands  - List the island catalog
  lore     - Request one lore fragment

Examples:
  echoisles play
  echoisles play --island 2 --mute
  echoisles play --spectate :8090
  echoisles serve --ssh :2222
  echoisles islands`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagIslands, "islands", "", "Path to island catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(islandsCmd)
	rootCmd.AddCommand(loreCmd)
}

// loadWorld reads tuning and the island catalog. Both are fatal when
// invalid since no level could be built.
func loadWorld() (config.Config, catalog.Catalog, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, catalog.Catalog{}, err
	}
	islands, err := catalog.Load(flagIslands)
	if err != nil {
		return config.Config{}, catalog.Catalog{}, err
	}
	return cfg, islands, nil
}

// seed returns the --seed value, or a time-based one.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newLogger builds a logger writing to --log-file when set and to
// fallback otherwise. The returned closer releases the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w, closer := fallback, func() {}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w, closer = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
