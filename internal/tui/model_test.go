package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmoura/askbox/internal/config"
	"github.com/dmoura/askbox/pkg/widget"
)

// blockingClient holds every question until the test releases it
type blockingClient struct {
	release chan string
	fail    chan error
}

func newBlockingClient() *blockingClient {
	return &blockingClient{
		release: make(chan string, 4),
		fail:    make(chan error, 4),
	}
}

func (c *blockingClient) Ask(ctx context.Context, question string) (string, error) {
	select {
	case answer := <-c.release:
		return answer, nil
	case err := <-c.fail:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Title = "Test Q&A"
	return cfg
}

func newSizedModel(t *testing.T, inline bool) Model {
	t.Helper()

	m := NewModel(newBlockingClient(), testConfig(), inline)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// waitState polls until the widget reaches the wanted request state
func waitState(t *testing.T, w *widget.Widget, want widget.RequestState) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		if w.State() == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("widget never reached state %v", want)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewModel_FloatingStartsClosed(t *testing.T) {
	m := NewModel(newBlockingClient(), testConfig(), false)

	if m.Widget().Panel() != widget.PanelClosed {
		t.Errorf("panel = %v, want floating-closed", m.Widget().Panel())
	}
}

func TestNewModel_Inline(t *testing.T) {
	m := NewModel(newBlockingClient(), testConfig(), true)

	if m.Widget().Panel() != widget.PanelInline {
		t.Errorf("panel = %v, want inline", m.Widget().Panel())
	}
}

func TestNewModel_ConfigDefaults(t *testing.T) {
	m := NewModel(newBlockingClient(), config.DefaultConfig(), false)

	if m.Widget().Title() != "Product Q&A" {
		t.Errorf("Title() = %q, want default", m.Widget().Title())
	}
	if m.Widget().Placeholder() != "Ask a question…" {
		t.Errorf("Placeholder() = %q, want default", m.Widget().Placeholder())
	}
}

func TestUpdate_EnterOpensClosedPanel(t *testing.T) {
	m := newSizedModel(t, false)

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)

	if m.Widget().Panel() != widget.PanelOpen {
		t.Errorf("panel = %v after enter, want floating-open", m.Widget().Panel())
	}
}

func TestUpdate_EscClosesOpenPanel(t *testing.T) {
	m := newSizedModel(t, false)
	m.Widget().Open()

	updated, _ := m.Update(keyMsg("esc"))
	m = updated.(Model)

	if m.Widget().Panel() != widget.PanelClosed {
		t.Errorf("panel = %v after esc, want floating-closed", m.Widget().Panel())
	}
}

func TestUpdate_SubmitOnEnter(t *testing.T) {
	m := newSizedModel(t, true)

	m.textarea.SetValue("how do refunds work?")
	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)

	msgs := m.Widget().Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message after submit, got %d", len(msgs))
	}
	if msgs[0].Content != "how do refunds work?" {
		t.Errorf("message content = %q", msgs[0].Content)
	}
	if !m.Widget().Pending() {
		t.Error("widget should be pending after submit")
	}
	if m.textarea.Value() != "" {
		t.Errorf("textarea = %q, want reset after dispatch", m.textarea.Value())
	}
}

func TestUpdate_WhitespaceEnterIsNoOp(t *testing.T) {
	m := newSizedModel(t, true)

	m.textarea.SetValue("   ")
	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)

	if len(m.Widget().Messages()) != 0 {
		t.Error("whitespace input must not submit")
	}
	if m.Widget().Pending() {
		t.Error("whitespace input must not start a request")
	}
}

func TestUpdate_EscCancelsPendingRequest(t *testing.T) {
	m := newSizedModel(t, true)

	m.textarea.SetValue("slow question")
	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)

	updated, _ = m.Update(keyMsg("esc"))
	m = updated.(Model)

	if m.Widget().Pending() {
		t.Error("esc while pending should cancel the request")
	}
	if got := len(m.Widget().Messages()); got != 1 {
		t.Errorf("conversation length = %d after cancel, want 1", got)
	}
}

func TestUpdate_TypingUpdatesDraft(t *testing.T) {
	m := newSizedModel(t, true)

	updated, _ := m.Update(keyMsg("h"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("i"))
	m = updated.(Model)

	if m.Widget().Draft() != "hi" {
		t.Errorf("draft = %q, want %q", m.Widget().Draft(), "hi")
	}
}

func TestView_LauncherWhenClosed(t *testing.T) {
	m := newSizedModel(t, false)

	view := m.View()
	if !strings.Contains(view, "Test Q&A") {
		t.Error("launcher should show the widget title")
	}
	if !strings.Contains(view, "enter to open") {
		t.Error("launcher should show the open hint")
	}
}

func TestView_PanelShowsTitleAndPlaceholderHint(t *testing.T) {
	m := newSizedModel(t, true)

	view := m.View()
	if !strings.Contains(view, "Test Q&A") {
		t.Error("panel should show the widget title")
	}
}

func TestView_ShowsErrorBanner(t *testing.T) {
	client := newBlockingClient()
	m := NewModel(client, testConfig(), true)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)

	m.textarea.SetValue("doomed question")
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(Model)

	client.fail <- context.DeadlineExceeded
	waitState(t, m.Widget(), widget.StateIdle)

	updated, _ = m.Update(widgetChangedMsg{})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "Request failed") {
		t.Error("view should surface the error banner text")
	}
}

func TestView_NotReady(t *testing.T) {
	m := NewModel(newBlockingClient(), testConfig(), true)

	if !strings.Contains(m.View(), "Initializing") {
		t.Error("view before first size message should show initializing")
	}
}
