package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/ewalden/drift/internal/domain"
)

var historyDays int

// historyCmd shows recent sessions and feedback moments.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions and feedback",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		since := time.Now().AddDate(0, 0, -historyDays)

		records, err := historyService.SessionRecords(ctx, since)
		if err != nil {
			return fmt.Errorf("failed to load session history: %w", err)
		}
		entries, err := historyService.FeedbackHistory(ctx, since)
		if err != nil {
			return fmt.Errorf("failed to load feedback history: %w", err)
		}

		if jsonOutput {
			return printHistoryJSON(records, entries)
		}

		width := terminalWidth()

		fmt.Printf("%s History (last %d days)\n\n", appConfig.Theme.IconApp, historyDays)

		if len(records) == 0 {
			fmt.Println("No completed sessions yet.")
		} else {
			fmt.Printf("Sessions (%d):\n", len(records))
			for _, r := range records {
				fmt.Printf("  %s  %5.1f min  %s\n",
					r.CreatedAt.Format("Jan 02 15:04"), r.Minutes, shortID(r.SessionID))
			}
		}

		if len(entries) > 0 {
			fmt.Printf("\nFeedback moments (%d):\n", len(entries))
			for _, e := range entries {
				line := fmt.Sprintf("  %s  %-12s at %s  %s",
					e.Date.Format("Jan 02 15:04"),
					domain.GetFeedbackLabelText(e.Label),
					formatClock(e.TimestampSeconds),
					shortID(e.SessionID))
				if len(line) > width {
					line = line[:width]
				}
				fmt.Println(line)
			}
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 7, "How many days back to show")
}

// terminalWidth returns the terminal width, defaulting to 80 when it cannot
// be determined or is too narrow.
func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// formatClock renders seconds as m:ss (or h:mm:ss past the hour).
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func printHistoryJSON(records []*domain.SessionRecord, entries []*domain.CommittedFeedbackEntry) error {
	type jsonRecord struct {
		SessionID string  `json:"session_id"`
		Minutes   float64 `json:"minutes"`
		Date      string  `json:"date"`
	}
	type jsonEntry struct {
		SessionID        string `json:"session_id"`
		Label            string `json:"label"`
		TimestampSeconds int    `json:"timestamp_seconds"`
		Date             string `json:"date"`
	}

	out := struct {
		Sessions []jsonRecord `json:"sessions"`
		Feedback []jsonEntry  `json:"feedback"`
	}{
		Sessions: make([]jsonRecord, 0, len(records)),
		Feedback: make([]jsonEntry, 0, len(entries)),
	}
	for _, r := range records {
		out.Sessions = append(out.Sessions, jsonRecord{
			SessionID: r.SessionID,
			Minutes:   r.Minutes,
			Date:      r.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, e := range entries {
		out.Feedback = append(out.Feedback, jsonEntry{
			SessionID:        e.SessionID,
			Label:            strings.ToLower(domain.GetFeedbackLabelText(e.Label)),
			TimestampSeconds: e.TimestampSeconds,
			Date:             e.Date.Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
