package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ewalden/drift/internal/adapters/tui"
	"github.com/ewalden/drift/internal/domain"
)

// playCmd starts a listening session.
var playCmd = &cobra.Command{
	Use:   "play [query]",
	Short: "Pick a session and start listening",
	Long: `Opens the library picker and plays the selected session. With a query
argument the library is fuzzy-filtered first; a single match plays
immediately.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	// An id (or unambiguous prefix) plays directly; otherwise fuzzy-filter.
	if query != "" {
		if item, err := resolveLibraryItem(cmd, query); err == nil {
			return playItem(ctx, item)
		}
	}

	items, err := libraryService.SearchItems(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}
	if len(items) == 0 {
		if query != "" {
			fmt.Printf("No sessions match %q. Try 'drift library list'.\n", query)
			return nil
		}
		fmt.Println("Your library is empty. Add a session with 'drift library add'.")
		return nil
	}

	var item *domain.LibraryItem
	if query != "" && len(items) == 1 {
		item = items[0]
	} else {
		result := tui.RunLibraryPicker(fmt.Sprintf("%s Choose a session", appConfig.Theme.IconApp), items, &appConfig.Theme)
		if result.Aborted {
			return nil
		}
		item = items[result.Index]
	}

	return playItem(ctx, item)
}

// playItem activates a session and runs the player UI until it closes.
func playItem(ctx context.Context, item *domain.LibraryItem) error {
	player, err := playerService.Activate(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	ui := tui.NewPlayer(&appConfig.Theme, &appConfig.Player)
	ui.SetOnSessionComplete(func(title string, minutes float64) {
		notifier.NotifySessionComplete(title, minutes)
	})

	return ui.Run(ctx, player)
}
