package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	apierrors "github.com/dmoura/askbox/internal/errors"
	"github.com/dmoura/askbox/internal/render"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"), // Red
	lipgloss.Color("#feca57"), // Yellow
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#5f27cd"), // Purple
	lipgloss.Color("#00d2d3"), // Teal
	lipgloss.Color("#1dd1a1"), // Green
}

var (
	cliColorText     = lipgloss.Color("#c0caf5")
	cliColorTextMute = lipgloss.Color("#3b4261")
	cliColorSuccess  = lipgloss.Color("#9ece6a")
	cliColorError    = lipgloss.Color("#f7768e")
)

// cliSpinner handles the animated loading indicator
type cliSpinner struct {
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner
func newSpinner(message string) *cliSpinner {
	return &cliSpinner{
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *cliSpinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(os.Stderr, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(os.Stderr, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *cliSpinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	spinIdx := s.frame % len(chars)
	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	// Build animated dots
	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(cliColorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(cliColorText).Render(s.message)

	// Print animation (clear line first)
	fmt.Fprintf(os.Stderr, "\r\033[K%s %s %s", spinnerChar, msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *cliSpinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *cliSpinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(cliColorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(cliColorSuccess).Render(message)
	fmt.Fprintf(os.Stderr, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner and clears the line
func (s *cliSpinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// formatErrorMessage formats a failure for terminal display
func formatErrorMessage(err error, context string) string {
	msg := lipgloss.NewStyle().Foreground(cliColorError).Bold(true).
		Render(fmt.Sprintf("⚠ %s: %s", context, apierrors.UserMessage(err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		detail := lipgloss.NewStyle().Foreground(cliColorTextMute).PaddingLeft(2).
			Render(fmt.Sprintf("HTTP Status: %d", status))
		msg += "\n" + detail
	}

	return msg
}

// runQuery executes a single question and prints the answer.
// If rawOutput is true, only the raw answer text is printed without decoration.
func runQuery(question string, rawOutput bool) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}

	client, cfg, err := buildClient()
	if err != nil {
		return err
	}

	var spin *cliSpinner
	if !rawOutput {
		spin = newSpinner("Looking that up")
		spin.start()
	}

	// Ctrl+C aborts the in-flight question
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	startTime := time.Now()
	answer, err := client.Ask(ctx, question)
	requestDuration := time.Since(startTime)

	if err != nil {
		if !rawOutput {
			spin.stopWithError()
		}
		if apierrors.IsCanceled(err) {
			// User-initiated abort is not a failure
			return nil
		}
		if !rawOutput {
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Query failed"))
		}
		return fmt.Errorf("query failed: %w", err)
	}
	if !rawOutput {
		spin.stopWithSuccess(fmt.Sprintf("Done (%s)", requestDuration.Round(time.Millisecond)))
	}

	// Raw output mode: answer text only
	if rawOutput {
		if outputFlag != "" {
			if err := os.WriteFile(outputFlag, []byte(answer), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		fmt.Print(answer)
		return nil
	}

	// Copy to clipboard if enabled in config
	if cfg.CopyToClipboard {
		if err := clipboard.WriteAll(answer); err != nil {
			warnMsg := lipgloss.NewStyle().Foreground(cliColorError).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(os.Stderr, warnMsg)
		} else {
			clipMsg := lipgloss.NewStyle().Foreground(cliColorSuccess).Render("✓ Copied to clipboard")
			fmt.Fprintln(os.Stderr, clipMsg)
		}
	}

	// Output to file if specified
	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(answer), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		successMsg := lipgloss.NewStyle().Foreground(cliColorSuccess).Render(
			fmt.Sprintf("✓ Answer saved to %s", outputFlag),
		)
		fmt.Fprintln(os.Stderr, successMsg)
		return nil
	}

	// Rendered output sized to the terminal
	width := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}

	opts := render.FromConfig(cfg.Markdown).WithWidth(width)
	rendered, err := render.Markdown(answer, opts)
	if err != nil {
		rendered = answer
	}

	fmt.Fprintln(os.Stderr)
	fmt.Println(strings.TrimRight(rendered, "\n"))
	return nil
}
