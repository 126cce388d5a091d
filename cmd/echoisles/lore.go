package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/echo-isles/internal/narrative"
	"github.com/vovakirdan/echo-isles/internal/world"
)

var (
	flagCategory string
	flagEndpoint string
)

var loreCmd = &cobra.Command{
	Use:   "lore <island>",
	Short: "Request one lore fragment",
	Long: `Sends a single narrative request and prints the result. Useful for
checking a lore service before playing against it.

Without --endpoint the configured endpoint is used; when none is
configured, lore comes from the offline fragments.

Examples:
  echoisles lore "Jungle Drum Island"
  echoisles lore "Coral Steel Drums" --category scroll
  echoisles lore "Ruined Echo Temple" --endpoint http://localhost:8080/lore`,
	Args: cobra.ExactArgs(1),
	Run:  runLore,
}

func init() {
	loreCmd.Flags().StringVar(&flagCategory, "category", "crystal", "Treasure category: crystal, relic, scroll")
	loreCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "Lore service URL (overrides config)")
}

func runLore(_ *cobra.Command, args []string) {
	cfg, _, err := loadWorld()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := world.ParseCategory(flagCategory); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	endpoint := cfg.Narrative.Endpoint
	if flagEndpoint != "" {
		endpoint = flagEndpoint
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Narrative.Timeout())
	defer cancel()

	fetcher := narrative.ForEndpoint(endpoint, seed())
	lore, err := fetcher.Fetch(ctx, narrative.Request{Island: args[0], Category: flagCategory})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lore request failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "The game would show: %s\n", narrative.Fallback.Title)
		os.Exit(1)
	}
	if !lore.Valid() {
		fmt.Fprintln(os.Stderr, "Lore request returned an unusable payload")
		os.Exit(1)
	}

	fmt.Println(lore.Title)
	fmt.Println(strings.Repeat("─", len([]rune(lore.Title))))
	fmt.Println(lore.Content)
}
