package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/echo-isles/internal/catalog"
	"github.com/vovakirdan/echo-isles/internal/config"
)

var islandsCmd = &cobra.Command{
	Use:   "islands",
	Short: "List the island catalog",
	Long:  `Shows every island in play order with its tier and the level it produces.`,
	Args:  cobra.NoArgs,
	Run:   runIslands,
}

func runIslands(_ *cobra.Command, _ []string) {
	cfg, islands, err := loadWorld()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(islandTable(cfg, islands))
	fmt.Println()
	fmt.Println("Run 'echoisles play --island <#>' to start on an island.")
}

// islandTable renders the catalog with the adversary and obstacle counts
// each island's tier produces.
func islandTable(cfg config.Config, islands catalog.Catalog) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("#", "ISLAND", "THEME", "TIER", "ADVERSARIES", "OBSTACLES", "FREQ", "VOICE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 1 {
				return cell.Foreground(lipgloss.Color(islands.At(row).Color))
			}
			return cell
		})

	for i, isl := range islands.Islands {
		t.Row(
			strconv.Itoa(i),
			isl.Name,
			isl.Theme,
			strconv.Itoa(isl.Difficulty),
			strconv.Itoa(cfg.EnemyCount(isl.Difficulty)),
			strconv.Itoa(cfg.ObstacleCount(isl.Difficulty)),
			fmt.Sprintf("%.0f Hz", isl.AudioFreq),
			fmt.Sprintf("%s/%s", isl.Osc, isl.Accent),
		)
	}
	return t.Render()
}
