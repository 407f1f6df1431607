package widget

// PanelState is the presentation state of the widget. It is a closed
// set: inline widgets never transition, floating widgets toggle
// between closed and open.
type PanelState int

const (
	// PanelInline renders the conversation permanently; there is no
	// toggle affordance and no transitions for the instance lifetime.
	PanelInline PanelState = iota
	// PanelClosed hides the conversation behind the toggle affordance
	PanelClosed
	// PanelOpen shows the floating conversation panel
	PanelOpen
)

func (s PanelState) String() string {
	switch s {
	case PanelInline:
		return "inline"
	case PanelClosed:
		return "floating-closed"
	case PanelOpen:
		return "floating-open"
	default:
		return "unknown"
	}
}

// Panel returns the current presentation state
func (w *Widget) Panel() PanelState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.panel
}

// Open shows the floating panel. No-op unless the widget is in the
// floating-closed state.
func (w *Widget) Open() {
	w.mu.Lock()
	if w.panel != PanelClosed {
		w.mu.Unlock()
		return
	}
	w.panel = PanelOpen
	w.mu.Unlock()
	w.notifyChanged()
}

// Close hides the floating panel. No-op unless the panel is open.
// The conversation is untouched across the transition.
func (w *Widget) Close() {
	w.mu.Lock()
	if w.panel != PanelOpen {
		w.mu.Unlock()
		return
	}
	w.panel = PanelClosed
	w.mu.Unlock()
	w.notifyChanged()
}
