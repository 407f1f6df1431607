package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmoura/askbox/internal/config"
	"github.com/dmoura/askbox/internal/render"
	"github.com/dmoura/askbox/pkg/widget"
)

// widgetChangedMsg is sent when the widget reports a state change
type widgetChangedMsg struct{}

// Model represents the TUI state. The widget owns all business data;
// the model only holds view components and dimensions.
type Model struct {
	widget  *widget.Widget
	changes chan struct{}

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	ready      bool
	statusNote string
	mdOpts     render.Options

	// Dimensions
	width  int
	height int
}

// NewModel creates a chat TUI model around a backend client
func NewModel(client widget.QueryClient, cfg config.Config, inline bool) Model {
	changes := make(chan struct{}, 1)

	opts := []widget.Option{
		widget.WithTitle(cfg.Title),
		widget.WithPlaceholder(cfg.Placeholder),
		widget.WithNotify(func() {
			// Coalesce: the view re-reads full state on each wakeup
			select {
			case changes <- struct{}{}:
			default:
			}
		}),
	}
	if inline {
		opts = append(opts, widget.WithInline())
	}
	w := widget.New(client, opts...)

	ta := textarea.New()
	ta.Placeholder = w.Placeholder()
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		widget:   w,
		changes:  changes,
		textarea: ta,
		spinner:  s,
		mdOpts:   render.FromConfig(cfg.Markdown),
	}
}

// Widget exposes the underlying widget (used in tests)
func (m Model) Widget() *widget.Widget {
	return m.widget
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.waitForChange(),
	)
}

// waitForChange blocks until the widget announces a state change
func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return widgetChangedMsg{}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		inputHeight := 5
		statusHeight := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.refreshViewport()

	case widgetChangedMsg:
		m.refreshViewport()
		m.viewport.GotoBottom()
		cmds = append(cmds, m.waitForChange())
		if m.widget.Pending() {
			cmds = append(cmds, m.spinner.Tick)
		}

	case tea.KeyMsg:
		m.statusNote = ""
		if m.widget.Panel() == widget.PanelClosed {
			return m.updateClosed(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			switch {
			case m.widget.Pending():
				m.widget.Cancel()
			case m.widget.Panel() == widget.PanelOpen:
				m.widget.Close()
			default:
				// Inline widgets have nothing to close
				return m, tea.Quit
			}

		case "enter":
			if !m.widget.Pending() && m.widget.Submit(m.textarea.Value()) {
				// The change listener armed in Init picks up the
				// dispatch; only the spinner needs a kick here
				m.textarea.Reset()
				return m, m.spinner.Tick
			}

		case "ctrl+y":
			if answer := m.widget.LastAnswer(); answer != "" {
				if err := clipboard.WriteAll(answer); err == nil {
					m.statusNote = "Copied answer"
				}
			}
		}

	case spinner.TickMsg:
		if m.widget.Pending() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Only pass KeyMsg to the textarea to prevent escape sequence leaks
	if !m.widget.Pending() && m.widget.Panel() != widget.PanelClosed {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
			m.widget.SetDraft(m.textarea.Value())
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// updateClosed handles keys while the floating panel is collapsed
func (m Model) updateClosed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "enter", "o", " ":
		m.widget.Open()
		m.refreshViewport()
		m.viewport.GotoBottom()
	}
	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.widget.Panel() == widget.PanelClosed {
		return m.renderLauncher()
	}

	var sections []string
	contentWidth := m.width - 4

	header := headerStyle.Width(contentWidth).Render(
		titleStyle.Render("✦ " + m.widget.Title()),
	)
	sections = append(sections, header)

	var messagesContent string
	if len(m.widget.Messages()) == 0 && !m.widget.Pending() {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	var inputContent string
	if m.widget.Pending() {
		inputContent = m.spinner.View() + loadingStyle.Render(" Looking that up…  ") +
			hintStyle.Render("esc to cancel")
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if banner := m.widget.Banner(); banner != "" {
		sections = append(sections, bannerStyle.Render("⚠ "+banner))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderLauncher renders the collapsed floating affordance
func (m Model) renderLauncher() string {
	box := launcherStyle.Render(
		titleStyle.Render("💬 "+m.widget.Title()) +
			hintStyle.Render("  enter to open"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Right, lipgloss.Bottom, box)
}

// renderWelcome renders the empty-conversation screen
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	title := welcomeTitleStyle.Width(width).Render(m.widget.Title())
	subtitle := welcomeStyle.Width(width).Render(m.widget.Placeholder())

	content := lipgloss.JoinVertical(lipgloss.Center, "", title, "", subtitle, "")

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderStatusBar renders the bottom shortcut bar
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Close"},
		{"Ctrl+Y", "Copy answer"},
		{"↑↓", "Scroll"},
	}
	if m.widget.Panel() == widget.PanelInline {
		shortcuts[1].desc = "Quit"
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	bar := strings.Join(items, "  │  ")
	if m.statusNote != "" {
		bar += statusDescStyle.Render("  │  ") + loadingStyle.Render(m.statusNote)
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// refreshViewport rebuilds the viewport content from the conversation
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.widget.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}

		switch {
		case msg.Role == widget.RoleUser:
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			content.WriteString(label + "\n" + bubble)

		case msg.IsError:
			label := assistantLabelStyle.Render("✦ " + m.widget.Title())
			bubble := errorBubbleStyle.Width(bubbleWidth).Render("⚠ " + msg.Content)
			content.WriteString(label + "\n" + bubble)

		default:
			label := assistantLabelStyle.Render("✦ " + m.widget.Title())

			rendered, err := render.Markdown(msg.Content, m.mdOpts.WithWidth(bubbleWidth-4))
			if err != nil {
				rendered = msg.Content
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	// Pending placeholder sits at the bottom so GotoBottom brings it
	// into view
	if m.widget.Pending() {
		content.WriteString("\n" + loadingStyle.Render("✦ …") + "\n")
	}

	m.viewport.SetContent(content.String())
}

// Run starts the chat TUI in the configured presentation mode
func Run(client widget.QueryClient, cfg config.Config, inline bool) error {
	m := NewModel(client, cfg, inline)

	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
