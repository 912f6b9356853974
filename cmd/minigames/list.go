package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minigames/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game with its controls and tick interval.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Printf("  %-8s  %-12s  %-8s  %-8s  %s\n", "ID", "Title", "Tick", "Replay", "Inputs")
	fmt.Printf("  %-8s  %-12s  %-8s  %-8s  %s\n", "--", "-----", "----", "------", "------")

	for _, g := range games {
		game, err := registry.Create(g.ID, registry.Options{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %-8s  %v\n", g.ID, err)
			continue
		}

		inputs := make([]string, 0, len(game.Inputs()))
		for _, k := range game.Inputs() {
			inputs = append(inputs, k.String())
		}
		replay := "no"
		if game.Restartable() {
			replay = "yes"
		}
		fmt.Printf("  %-8s  %-12s  %-8s  %-8s  %s\n",
			g.ID, g.Title, game.Interval(), replay, strings.Join(inputs, ", "))
	}

	fmt.Println()
	fmt.Println("Run 'minigames play <id>' to play a game.")
}
