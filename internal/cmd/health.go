package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/gamenight/internal/logging"
	"github.com/runger/gamenight/internal/provider"
	"github.com/runger/gamenight/internal/store"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the database and model backend are reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ok := true

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return err
		}
	}
	st, err := store.Open(dbPath)
	if err != nil {
		fmt.Printf("%s✗%s database: %v\n", colorRed, colorReset, err)
		ok = false
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		stats, serr := st.Stats(ctx)
		cancel()
		st.Close()
		if serr != nil {
			fmt.Printf("%s✗%s database: %v\n", colorRed, colorReset, serr)
			ok = false
		} else {
			fmt.Printf("%s✓%s database: %s (%d games)\n", colorGreen, colorReset, dbPath, stats.Games)
		}
	}

	model := provider.NewOllama(cfg.Ollama.Host, cfg.Ollama.Model,
		provider.WithLogger(logging.Discard()),
	)
	ctx, cancel := context.WithTimeout(context.Background(), provider.HealthCheckTimeout)
	defer cancel()
	if model.HealthCheck(ctx) {
		fmt.Printf("%s✓%s ollama: %s (%s)\n", colorGreen, colorReset, cfg.Ollama.Host, cfg.Ollama.Model)
	} else {
		fmt.Printf("%s✗%s ollama: unreachable at %s (suggestions fall back to templates)\n", colorYellow, colorReset, cfg.Ollama.Host)
	}

	if !ok {
		return fmt.Errorf("health check failed")
	}
	return nil
}
