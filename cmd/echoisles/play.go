package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/echo-isles/internal/audio"
	"github.com/vovakirdan/echo-isles/internal/narrative"
	"github.com/vovakirdan/echo-isles/internal/platform/spectate"
	"github.com/vovakirdan/echo-isles/internal/platform/tui"
	"github.com/vovakirdan/echo-isles/internal/session"
	"github.com/vovakirdan/echo-isles/internal/storage"
)

var (
	flagSpectate string
	flagMute     bool
	flagIsland   int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Echo Isles in this terminal",
	Long: `Start a local game.

Controls:
  WASD/Arrows  - Move
  Q            - Scanner pulse
  E            - Hide (hold)
  Space        - Collect a nearby treasure
  Enter/X      - Close the lore popup
  J            - Echo journal
  P            - Pause
  M            - Mute
  Esc/Ctrl+C   - Quit

Examples:
  echoisles play
  echoisles play --island 3
  echoisles play --seed 42 --mute
  echoisles play --spectate :8090   # watch at ws://localhost:8090/spectate`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a WebSocket spectator feed on this address")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with audio muted")
	playCmd.Flags().IntVar(&flagIsland, "island", 0, "Island index to start on")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play() error {
	cfg, islands, err := loadWorld()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	logger, closeLog, err := newLogger(io.Discard, "echoisles")
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	s := seed()
	player := audio.NewPlayer(s, logger)
	if initErr := player.Init(); initErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio disabled: %v\n", initErr)
	}
	defer player.Close()
	player.SetMuted(flagMute)

	journal, err := storage.OpenJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open journal: %v\n", err)
		journal = nil
	}
	if journal != nil {
		defer journal.Close()
	}

	opts := session.Options{
		Seed:        s,
		StartIsland: flagIsland,
		Fetcher:     narrative.ForEndpoint(cfg.Narrative.Endpoint, s),
		Cues:        player,
		Journal:     journal,
		Logger:      logger,
	}

	if flagSpectate != "" {
		hub := spectate.NewHub(logger)
		feed := spectate.NewServer(flagSpectate, hub, logger)
		feed.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			feed.Shutdown(ctx)
		}()
		opts.Publisher = hub
		opts.PublishEvery = max(flagFPS/20, 1)
	}

	sess, err := session.New(cfg, islands, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := tui.Run(sess, tui.Options{
		FPS:    flagFPS,
		Width:  width,
		Height: height,
		Muter:  player,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
