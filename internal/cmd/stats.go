package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var statsRecentDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library and suggestion statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsRecentDays, "recent", 7, "Days of recent plays to show")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := st.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	fmt.Printf("%sgamenight stats%s\n", colorBold, colorReset)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("  games:       %d\n", stats.Games)
	fmt.Printf("  plays:       %d\n", stats.Plays)
	fmt.Printf("  suggestions: %d\n", stats.Suggestions)

	sstats, err := st.SuggestionStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load suggestion stats: %w", err)
	}

	if sstats.Total > 0 {
		fmt.Println()
		fmt.Printf("%sSuggestions%s\n", colorBold, colorReset)
		fmt.Printf("  accepted:     %d (%.0f%%)\n", sstats.Accepted, sstats.AcceptanceRate)
		fmt.Printf("  last 30 days: %d\n", sstats.Last30Days)
		if len(sstats.TopGames) > 0 {
			fmt.Println("  most suggested:")
			for _, tg := range sstats.TopGames {
				fmt.Printf("    %s%s%s (%d)\n", colorCyan, tg.Name, colorReset, tg.Count)
			}
		}
	}

	plays, err := st.RecentPlays(ctx, statsRecentDays)
	if err != nil {
		return fmt.Errorf("failed to load recent plays: %w", err)
	}
	if len(plays) > 0 {
		fmt.Println()
		fmt.Printf("%sRecent plays%s (last %d days)\n", colorBold, colorReset, statsRecentDays)
		for _, p := range plays {
			fmt.Printf("  %s %s%s%s\n", p.GameName, colorDim, formatAgo(p.PlayedAt), colorReset)
		}
	}

	return nil
}
