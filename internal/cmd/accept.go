package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var acceptCmd = &cobra.Command{
	Use:   "accept <suggestion-id>",
	Short: "Mark a suggestion as accepted",
	Long: `Mark a logged suggestion as accepted (the group went with it).

Acceptance feeds the stats command's acceptance rate. A suggestion can
only be accepted once.`,
	Args: cobra.ExactArgs(1),
	RunE: runAccept,
}

func init() {
	rootCmd.AddCommand(acceptCmd)
}

func runAccept(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid suggestion id: %s", args[0])
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

	ok, err := st.MarkSuggestionAccepted(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("suggestion %d not found or already accepted", id)
	}

	fmt.Printf("%sAccepted%s suggestion #%d\n", colorGreen, colorReset, id)
	return nil
}
