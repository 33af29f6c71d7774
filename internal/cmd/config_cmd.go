package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/gamenight/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set gamenight configuration values.

Without arguments, lists all configuration keys.
With one argument, shows the value of that key.
With two arguments, sets the key to the value.

Configuration is stored in ~/.gamenight/config.yaml.

Keys are in the format: section.key
Sections: database, ollama, suggestions, rate_limiting, logging

Examples:
  gamenight config                              # List all keys
  gamenight config ollama.model                 # Get the model name
  gamenight config suggestions.cooldown_hours 72`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch len(args) {
	case 0:
		return listConfig(cfg, path)
	case 1:
		return getConfig(cfg, args[0])
	case 2:
		return setConfig(cfg, path, args[0], args[1])
	}

	return nil
}

func listConfig(cfg *config.Config, path string) error {
	fmt.Printf("%sConfiguration Keys%s\n", colorBold, colorReset)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println()

	for _, key := range config.ListKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		displayValue := value
		if displayValue == "" {
			displayValue = colorDim + "(not set)" + colorReset
		}
		fmt.Printf("  %s%s%s = %s\n", colorCyan, key, colorReset, displayValue)
	}

	fmt.Println()
	fmt.Printf("Config file: %s\n", path)
	return nil
}

func getConfig(cfg *config.Config, key string) error {
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}

	if value == "" {
		fmt.Printf("%s(not set)%s\n", colorDim, colorReset)
	} else {
		fmt.Println(value)
	}
	return nil
}

func setConfig(cfg *config.Config, path, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.SaveToFile(path); err != nil {
		return err
	}

	fmt.Printf("%s%s%s = %s\n", colorCyan, key, colorReset, value)
	fmt.Printf("Saved to: %s\n", path)
	return nil
}
