// Package commands provides CLI commands for askbox.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dmoura/askbox/internal/api"
	"github.com/dmoura/askbox/internal/config"
)

var (
	// Global flags
	apiKeyFlag  string
	baseURLFlag string
	outputFlag  string
	fileFlag    string
	plainFlag   bool
	inlineFlag  bool
	verboseFlag bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "askbox [question]",
	Short: "Chat widget for an org-scoped Q&A backend",
	Long: `askbox is a terminal chat widget for a document question-answering
backend. Questions are sent to the org-scoped endpoint configured via
--base-url (or the config file) and authenticated with an API key.

Examples:
  askbox chat                           Start the interactive chat widget
  askbox config set api_key sk-...      Store the API key
  askbox "How do refunds work?"         Send a single question
  askbox -f question.md                 Read the question from a file
  cat question.md | askbox              Read the question from stdin
  askbox "Hello" -o answer.md           Save the answer to a file`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check for version flag
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("askbox %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		// Check for file input
		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data), plainFlag)
		}

		// Check for stdin
		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data), plainFlag)
		}

		// Check for positional argument
		if len(args) > 0 {
			return runQuery(args[0], plainFlag)
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "API key (overrides config file)")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Backend base URL (overrides config file)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save answer to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read question from file")
	rootCmd.Flags().BoolVar(&plainFlag, "plain", false, "Print the raw answer without decoration")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
}

// initLogging configures the global zerolog logger
func initLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	level := zerolog.WarnLevel
	if verboseFlag {
		level = zerolog.DebugLevel
	} else if cfg, err := config.LoadConfig(); err == nil && cfg.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}

// buildClient resolves credentials from flags and config and creates
// the backend client
func buildClient() (*api.Client, config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	apiKey := cfg.APIKey
	if apiKeyFlag != "" {
		apiKey = apiKeyFlag
	}
	baseURL := cfg.BaseURL
	if baseURLFlag != "" {
		baseURL = baseURLFlag
	}

	client, err := api.NewClient(apiKey, baseURL)
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to create client: %w (set credentials via 'askbox config set' or flags)", err)
	}

	return client, cfg, nil
}
