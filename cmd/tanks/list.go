package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available games and tank classes",
	Long:  `Shows the registered games and the tank classes you can play.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Tank classes:")
	fmt.Println()
	fmt.Printf("  %-8s  %-5s  %-6s  %-5s  %s\n", "Class", "Speed", "Reload", "Shell", "Special")
	fmt.Printf("  %-8s  %-5s  %-6s  %-5s  %s\n", "-----", "-----", "------", "-----", "-------")
	for _, c := range tanks.Classes() {
		s := c.Stats()
		fmt.Printf("  %-8s  %-5.1f  %-6s  %-5.0f  %s\n", s.Name, s.Speed, s.FireRate, s.BulletSpeed, s.Blurb)
	}

	fmt.Println()
	fmt.Println("Run 'tanks play --class <class>' to play.")
}
