package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	playPartySize int
	playNotes     string
)

var playCmd = &cobra.Command{
	Use:   "play <name>",
	Short: "Record that a game was played",
	Long: `Record a play of a game, by name (case-insensitive).

Played games go on cooldown: they won't be suggested again until the
configured cooldown window passes.

Examples:
  gamenight play Valheim
  gamenight play "Deep Rock Galactic" --party 4 --notes "haz 5 runs"`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playPartySize, "party", 0, "How many played (0 = not recorded)")
	playCmd.Flags().StringVar(&playNotes, "notes", "", "Optional notes")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
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

	game, err := st.GameByName(ctx, args[0])
	if err != nil {
		return err
	}
	if game == nil {
		return fmt.Errorf("no game named %q in the library (add it first with: gamenight games add)", args[0])
	}

	if _, err := st.RecordPlay(ctx, game.ID, playPartySize, playNotes); err != nil {
		return fmt.Errorf("failed to record play: %w", err)
	}

	fmt.Printf("%sLogged%s a play of %s\n", colorGreen, colorReset, game.Name)
	return nil
}
