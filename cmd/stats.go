package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ewalden/drift/internal/domain"
)

// statsCmd shows aggregate listening statistics.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show listening statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := historyService.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		if jsonOutput {
			return printStatsJSON(stats)
		}

		fmt.Printf("%s Listening stats\n\n", appConfig.Theme.IconStats)
		fmt.Printf("  Sessions completed:  %d\n", stats.SessionsCompleted)
		fmt.Printf("  Total minutes:       %.1f\n", stats.TotalMinutes)
		if stats.MeanRating > 0 {
			fmt.Printf("  Mean rating:         %.1f / 10\n", stats.MeanRating)
		}

		if len(stats.LabelCounts) > 0 {
			fmt.Println("\n  Feedback moments:")
			for _, label := range sortedLabels(stats.LabelCounts) {
				fmt.Printf("    %-12s %d\n", domain.GetFeedbackLabelText(label), stats.LabelCounts[label])
			}
		}

		return nil
	},
}

// sortedLabels orders labels along the mood axis for stable output.
func sortedLabels(counts map[domain.FeedbackLabel]int) []domain.FeedbackLabel {
	labels := make([]domain.FeedbackLabel, 0, len(counts))
	for _, label := range domain.FeedbackLabels {
		if _, ok := counts[label]; ok {
			labels = append(labels, label)
		}
	}
	return labels
}

func printStatsJSON(stats *domain.PracticeStats) error {
	labelCounts := make(map[string]int, len(stats.LabelCounts))
	for label, count := range stats.LabelCounts {
		labelCounts[strings.ToLower(domain.GetFeedbackLabelText(label))] = count
	}

	out := struct {
		SessionsCompleted int            `json:"sessions_completed"`
		TotalMinutes      float64        `json:"total_minutes"`
		MeanRating        float64        `json:"mean_rating"`
		LabelCounts       map[string]int `json:"label_counts"`
	}{
		SessionsCompleted: stats.SessionsCompleted,
		TotalMinutes:      stats.TotalMinutes,
		MeanRating:        stats.MeanRating,
		LabelCounts:       labelCounts,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
