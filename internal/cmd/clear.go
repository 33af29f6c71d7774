package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var clearYes bool

var gamesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all games, plays, and suggestions",
	Args:  cobra.NoArgs,
	RunE:  runGamesClear,
}

func init() {
	gamesClearCmd.Flags().BoolVar(&clearYes, "yes", false, "Skip confirmation")
	gamesCmd.AddCommand(gamesClearCmd)
}

func runGamesClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return fmt.Errorf("this deletes everything; re-run with --yes to confirm")
	}

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

	if err := st.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear library: %w", err)
	}

	fmt.Printf("%sCleared%s the library, play history, and suggestion log\n", colorYellow, colorReset)
	return nil
}
