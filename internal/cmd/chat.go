package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var chatUser string

var chatCmd = &cobra.Command{
	Use:   "chat <message...>",
	Short: "Get a casual reply to a message",
	Long: `Chat casually, without asking for a suggestion.

Uses the same voice as suggestions but no game is picked or recorded.

Example:
  gamenight chat "how was that valheim run last night"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatUser, "user", "", "Requester, for rate limiting")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	eng := buildEngine(cfg, st)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Ollama.TimeoutSecs+10)*time.Second)
	defer cancel()

	fmt.Println(eng.CasualReply(ctx, strings.Join(args, " "), nil, chatUser))
	return nil
}
