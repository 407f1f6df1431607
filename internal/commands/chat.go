package commands

import (
	"github.com/spf13/cobra"

	"github.com/dmoura/askbox/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat widget",
	Long: `Start the interactive chat widget.

By default the widget floats behind a launcher; press Enter to open it.
With --inline (or "floating": false in the config) the conversation
panel is rendered permanently.

Press Esc to cancel a question in flight, Ctrl+C to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func init() {
	chatCmd.Flags().BoolVar(&inlineFlag, "inline", false, "Render the panel inline instead of floating")
}

func runChat() error {
	client, cfg, err := buildClient()
	if err != nil {
		return err
	}

	inline := inlineFlag || !cfg.IsFloating()
	return tui.Run(client, cfg, inline)
}
