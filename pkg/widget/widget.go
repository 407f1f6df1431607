package widget

import (
	"context"
	"strings"
	"sync"

	apierrors "github.com/dmoura/askbox/internal/errors"
	"github.com/dmoura/askbox/internal/models"
)

// QueryClient is the backend the widget submits questions to.
// api.Client satisfies it; tests substitute fakes.
type QueryClient interface {
	Ask(ctx context.Context, question string) (string, error)
}

// RequestState tracks the lifecycle of the current question
type RequestState int

const (
	// StateIdle means no question is in flight; Submit is accepted
	StateIdle RequestState = iota
	// StatePending means a question is in flight; Submit is rejected
	// until it settles or is canceled
	StatePending
)

// Widget is one chat widget instance. It owns its conversation, draft
// and request state exclusively; instances share nothing.
//
// All exported methods are safe for concurrent use, though a typical
// host drives the widget from a single event loop.
type Widget struct {
	mu     sync.Mutex
	client QueryClient

	conv  Conversation
	draft string

	pending bool
	// generation ties each dispatched request to the state it may
	// settle. Cancel bumps it, so a late resolution of an aborted
	// request finds a stale generation and is dropped.
	generation uint64
	abort      context.CancelFunc

	banner string
	panel  PanelState

	title       string
	placeholder string
	notify      func()
}

// New creates a widget talking to the given backend client. The
// default presentation is floating (closed); see WithInline.
func New(client QueryClient, opts ...Option) *Widget {
	w := &Widget{
		client:      client,
		panel:       PanelClosed,
		title:       models.DefaultTitle,
		placeholder: models.DefaultPlaceholder,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Title returns the configured panel title
func (w *Widget) Title() string {
	return w.title
}

// Placeholder returns the configured input placeholder
func (w *Widget) Placeholder() string {
	return w.placeholder
}

// Messages returns a snapshot of the conversation in insertion order
func (w *Widget) Messages() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conv.All()
}

// State returns the current request state
func (w *Widget) State() RequestState {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending {
		return StatePending
	}
	return StateIdle
}

// Pending reports whether a question is in flight
func (w *Widget) Pending() bool {
	return w.State() == StatePending
}

// Banner returns the transient error banner text, empty when the last
// request succeeded or nothing has failed yet.
func (w *Widget) Banner() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.banner
}

// Draft returns the current unsent input text
func (w *Widget) Draft() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// SetDraft replaces the unsent input text
func (w *Widget) SetDraft(text string) {
	w.mu.Lock()
	w.draft = text
	w.mu.Unlock()
}

// LastAnswer returns the content of the most recent successful
// assistant message, or empty when there is none.
func (w *Widget) LastAnswer() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	msgs := w.conv.All()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleAssistant && !msgs[i].IsError {
			return msgs[i].Content
		}
	}
	return ""
}

// Submit dispatches a question to the backend. It is a no-op (false)
// when the question is empty after trimming or a request is already
// pending. Otherwise the user message is appended and visible before
// the request settles, the draft is cleared, and the answer arrives
// later as an assistant message.
func (w *Widget) Submit(question string) bool {
	question = strings.TrimSpace(question)

	w.mu.Lock()
	if question == "" || w.pending {
		w.mu.Unlock()
		return false
	}

	w.conv.Append(Message{Role: RoleUser, Content: question})
	w.draft = ""
	w.pending = true
	w.generation++
	gen := w.generation

	ctx, cancel := context.WithCancel(context.Background())
	w.abort = cancel
	w.mu.Unlock()

	w.notifyChanged()

	go func() {
		answer, err := w.client.Ask(ctx, question)
		cancel()
		w.settle(gen, answer, err)
	}()

	return true
}

// Cancel aborts the in-flight question, if any. No message is
// appended: cancellation is not an error. Returns false when idle.
func (w *Widget) Cancel() bool {
	w.mu.Lock()
	if !w.pending {
		w.mu.Unlock()
		return false
	}

	if w.abort != nil {
		w.abort()
		w.abort = nil
	}
	w.pending = false
	w.generation++
	w.mu.Unlock()

	w.notifyChanged()
	return true
}

// settle applies the outcome of a dispatched request. Outcomes from a
// canceled or superseded request carry a stale generation and are
// dropped without touching the conversation.
func (w *Widget) settle(gen uint64, answer string, err error) {
	w.mu.Lock()
	if gen != w.generation || !w.pending {
		w.mu.Unlock()
		return
	}

	w.pending = false
	w.abort = nil

	if err != nil {
		text := apierrors.UserMessage(err)
		w.conv.Append(Message{Role: RoleAssistant, Content: text, IsError: true})
		w.banner = text
	} else {
		w.conv.Append(Message{Role: RoleAssistant, Content: answer})
		w.banner = ""
	}
	w.mu.Unlock()

	w.notifyChanged()
}

// notifyChanged fires the host callback outside the lock
func (w *Widget) notifyChanged() {
	if w.notify != nil {
		w.notify()
	}
}
