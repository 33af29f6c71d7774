package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/gamenight/internal/config"
	"github.com/runger/gamenight/internal/engine"
	"github.com/runger/gamenight/internal/logging"
	"github.com/runger/gamenight/internal/partycount"
	"github.com/runger/gamenight/internal/provider"
	"github.com/runger/gamenight/internal/sanitize"
	"github.com/runger/gamenight/internal/store"
)

var (
	suggestCount   int
	suggestAmbient int
	suggestUser    string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [message...]",
	Short: "Suggest a game to play",
	Long: `Suggest a game for your group.

The party size comes from --count, or is extracted from the message text
("5 of us want to play something"). With neither, pass --ambient to use
the number of people around; small ambient counts trigger a clarifying
question instead of a guess.

Examples:
  gamenight suggest --count 4
  gamenight suggest "three of us are bored, what should we play"
  gamenight suggest --ambient 6 "what should we play"`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVar(&suggestCount, "count", 0, "Party size (overrides message extraction)")
	suggestCmd.Flags().IntVar(&suggestAmbient, "ambient", 0, "People present, used when the message names no count")
	suggestCmd.Flags().StringVar(&suggestUser, "user", "", "Requester, for rate limiting")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")

	count := suggestCount
	if count < 1 {
		extracted, ok := partycount.ExtractCount(message)
		needAsk, resolved := partycount.Resolve(extracted, ok, suggestAmbient)
		if needAsk {
			fmt.Println(partycount.ClarificationMessage(suggestAmbient))
			return nil
		}
		count = resolved
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

	eng := buildEngine(cfg, st)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Ollama.TimeoutSecs+10)*time.Second)
	defer cancel()

	fmt.Println(eng.Suggest(ctx, count, suggestUser))
	return nil
}

// buildEngine wires the suggestion engine from config. The logger writes
// JSON to stderr so replies on stdout stay clean.
func buildEngine(cfg *config.Config, st store.Store) *engine.Engine {
	logger := logging.New(&logging.Config{
		Output: os.Stderr,
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})

	model := provider.NewOllama(cfg.Ollama.Host, cfg.Ollama.Model,
		provider.WithTimeout(time.Duration(cfg.Ollama.TimeoutSecs)*time.Second),
		provider.WithTemperature(cfg.Ollama.Temperature),
		provider.WithMaxTokens(cfg.Ollama.MaxTokens),
		provider.WithLogger(logger),
	)

	var opts []engine.Option
	if cfg.RateLimit.Enabled {
		opts = append(opts, engine.WithRateLimit(
			time.Duration(cfg.RateLimit.CooldownSecs)*time.Second,
			cfg.RateLimit.Message,
		))
	}

	return engine.New(st, model, sanitize.NewSanitizer(), cfg, logger, opts...)
}
