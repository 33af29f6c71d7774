package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/gamenight/internal/store"
)

var (
	addCategory string
	addTags     []string
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Manage the game library",
}

var gamesAddCmd = &cobra.Command{
	Use:   "add <name> <min-players> <max-players>",
	Short: "Add a game to the library",
	Long: `Add a game to the library with its supported player range.

Names are unique ignoring case. The player range is inclusive on both ends.

Examples:
  gamenight games add "Deep Rock Galactic" 1 4
  gamenight games add Valheim 1 10 --category co-op --tags survival,building`,
	Args: cobra.ExactArgs(3),
	RunE: runGamesAdd,
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all games in the library",
	Args:  cobra.NoArgs,
	RunE:  runGamesList,
}

var gamesRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a game from the library",
	Long: `Remove a game by name (case-insensitive).

Play history for the game is removed with it. Suggestion counts survive
but lose the game reference.`,
	Args: cobra.ExactArgs(1),
	RunE: runGamesRm,
}

func init() {
	gamesAddCmd.Flags().StringVar(&addCategory, "category", "", "Optional category label (e.g. co-op, party)")
	gamesAddCmd.Flags().StringSliceVar(&addTags, "tags", nil, "Comma-separated tags")

	gamesCmd.AddCommand(gamesAddCmd)
	gamesCmd.AddCommand(gamesListCmd)
	gamesCmd.AddCommand(gamesRmCmd)
	rootCmd.AddCommand(gamesCmd)
}

func runGamesAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	minPlayers, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid min-players: %s", args[1])
	}
	maxPlayers, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid max-players: %s", args[2])
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

	id, err := st.AddGame(ctx, name, minPlayers, maxPlayers, addCategory, addTags)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			return fmt.Errorf("%q is already in the library", name)
		}
		return err
	}

	fmt.Printf("%sAdded%s %s (%d-%d players) [#%d]\n", colorGreen, colorReset, name, minPlayers, maxPlayers, id)
	return nil
}

func runGamesList(cmd *cobra.Command, args []string) error {
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

	games, err := st.ListGames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	if len(games) == 0 {
		fmt.Println("No games yet. Add one with: gamenight games add <name> <min> <max>")
		return nil
	}

	fmt.Printf("%sGame Library%s\n", colorBold, colorReset)
	fmt.Println(strings.Repeat("-", 40))
	for _, g := range games {
		line := fmt.Sprintf("  %s%s%s (%d-%d players)", colorCyan, g.Name, colorReset, g.MinPlayers, g.MaxPlayers)
		if g.Category != "" {
			line += fmt.Sprintf(" %s[%s]%s", colorDim, g.Category, colorReset)
		}
		if len(g.Tags) > 0 {
			line += fmt.Sprintf(" %s%s%s", colorDim, strings.Join(g.Tags, ", "), colorReset)
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%s%d game(s)%s\n", colorDim, len(games), colorReset)
	return nil
}

func runGamesRm(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("no game named %q in the library", args[0])
	}

	removed, err := st.DeleteGame(ctx, game.ID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("no game named %q in the library", args[0])
	}

	fmt.Printf("%sRemoved%s %s\n", colorYellow, colorReset, game.Name)
	return nil
}
