package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmoura/askbox/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("api_key:           %s\n", maskKey(cfg.APIKey))
		fmt.Printf("base_url:          %s\n", cfg.BaseURL)
		fmt.Printf("title:             %s\n", cfg.Title)
		fmt.Printf("placeholder:       %s\n", cfg.Placeholder)
		fmt.Printf("floating:          %v\n", cfg.IsFloating())
		fmt.Printf("verbose:           %v\n", cfg.Verbose)
		fmt.Printf("copy_to_clipboard: %v\n", cfg.CopyToClipboard)
		fmt.Printf("markdown.style:    %s\n", cfg.Markdown.Style)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it to the config file.

Supported keys:
  api_key, base_url, title, placeholder, floating, verbose,
  copy_to_clipboard, markdown.style`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		key, value := args[0], args[1]
		if err := applyConfigValue(&cfg, key, value); err != nil {
			return err
		}

		if err := config.SaveConfig(cfg); err != nil {
			return err
		}
		fmt.Printf("✓ %s updated\n", key)
		return nil
	},
}

func applyConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "api_key":
		cfg.APIKey = value
	case "base_url":
		cfg.BaseURL = value
	case "title":
		cfg.Title = value
	case "placeholder":
		cfg.Placeholder = value
	case "floating":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("floating must be true or false: %w", err)
		}
		cfg.Floating = &b
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verbose must be true or false: %w", err)
		}
		cfg.Verbose = b
	case "copy_to_clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("copy_to_clipboard must be true or false: %w", err)
		}
		cfg.CopyToClipboard = b
	case "markdown.style":
		cfg.Markdown.Style = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// maskKey hides most of the API key when printing
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "…" + key[len(key)-4:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
}
