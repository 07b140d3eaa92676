package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetropet/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the games you can play",
	Long: `Prints every game ID with its title. Games marked "saved" keep their
state between sessions in the --db file, per pet slot.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	games := registry.List()
	if len(games) == 0 {
		fmt.Fprintln(out, "Nothing registered.")
		return nil
	}

	idWidth := len("ID")
	for _, g := range games {
		idWidth = max(idWidth, len(g.ID))
	}

	fmt.Fprintf(out, "%-*s  %s\n", idWidth, "ID", "Title")
	for _, g := range games {
		title := g.Title
		if g.Persistent {
			title += " (saved)"
		}
		fmt.Fprintf(out, "%-*s  %s\n", idWidth, g.ID, title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Start one with 'tetropet play <id>', or browse with 'tetropet menu'.")
	return nil
}
