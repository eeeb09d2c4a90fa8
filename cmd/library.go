package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ewalden/drift/internal/domain"
	"github.com/ewalden/drift/internal/services"
)

var (
	addGuide    string
	addSource   string
	addDuration int
)

// libraryCmd groups the session library subcommands.
var libraryCmd = &cobra.Command{
	Use:     "library",
	Aliases: []string{"lib"},
	Short:   "Manage the session library",
}

var libraryListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List library sessions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		items, err := libraryService.SearchItems(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to list library: %w", err)
		}

		if jsonOutput {
			return printLibraryJSON(items)
		}

		if len(items) == 0 {
			fmt.Println("Your library is empty. Add a session with 'drift library add'.")
			return nil
		}

		fmt.Printf("%s Library (%d sessions):\n\n", appConfig.Theme.IconApp, len(items))
		for _, item := range items {
			fmt.Printf("  %-10s %-28s %-18s %s\n", shortID(item.ID), item.Title, item.Guide, item.DurationLabel())
		}
		return nil
	},
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a session to the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		duration := addDuration
		if duration <= 0 {
			duration = appConfig.Player.DefaultDurationMin
		}

		item, err := libraryService.AddItem(cmd.Context(), services.AddItemRequest{
			Title:           args[0],
			Guide:           addGuide,
			SourceRef:       addSource,
			DurationSeconds: duration * 60,
		})
		if err != nil {
			return fmt.Errorf("failed to add session: %w", err)
		}

		if jsonOutput {
			return printLibraryJSON([]*domain.LibraryItem{item})
		}

		fmt.Printf("✅ Added: %s (%s)\n", item.Title, item.DurationLabel())
		return nil
	},
}

var libraryRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a session from the library",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		item, err := resolveLibraryItem(cmd, args[0])
		if err != nil {
			return err
		}
		if err := libraryService.RemoveItem(ctx, item.ID); err != nil {
			return fmt.Errorf("failed to remove session: %w", err)
		}

		if jsonOutput {
			fmt.Printf(`{"removed": %q}`+"\n", item.ID)
			return nil
		}
		fmt.Printf("🗑️  Removed: %s\n", item.Title)
		return nil
	},
}

func init() {
	libraryAddCmd.Flags().StringVar(&addGuide, "guide", "", "Guide or narrator name")
	libraryAddCmd.Flags().StringVar(&addSource, "source", "", "Audio source reference (file path or URL)")
	libraryAddCmd.Flags().IntVar(&addDuration, "duration", 0, "Session duration in minutes")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
}

// resolveLibraryItem accepts a full id or an unambiguous prefix.
func resolveLibraryItem(cmd *cobra.Command, ref string) (*domain.LibraryItem, error) {
	ctx := cmd.Context()

	if item, err := libraryService.GetItem(ctx, ref); err == nil {
		return item, nil
	}

	items, err := libraryService.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}

	var matches []*domain.LibraryItem
	for _, item := range items {
		if strings.HasPrefix(item.ID, ref) {
			matches = append(matches, item)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no session with id %q", ref)
	default:
		return nil, fmt.Errorf("id prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func printLibraryJSON(items []*domain.LibraryItem) error {
	type jsonItem struct {
		ID              string `json:"id"`
		Title           string `json:"title"`
		Guide           string `json:"guide,omitempty"`
		SourceRef       string `json:"source_ref,omitempty"`
		DurationSeconds int    `json:"duration_seconds"`
		CreatedAt       string `json:"created_at"`
	}

	out := make([]jsonItem, 0, len(items))
	for _, item := range items {
		out = append(out, jsonItem{
			ID:              item.ID,
			Title:           item.Title,
			Guide:           item.Guide,
			SourceRef:       item.SourceRef,
			DurationSeconds: item.DurationSeconds,
			CreatedAt:       item.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal library: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
