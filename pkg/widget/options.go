package widget

// Option is a function that configures the widget
type Option func(*Widget)

// WithTitle sets the panel title
func WithTitle(title string) Option {
	return func(w *Widget) {
		if title != "" {
			w.title = title
		}
	}
}

// WithPlaceholder sets the input placeholder text
func WithPlaceholder(placeholder string) Option {
	return func(w *Widget) {
		if placeholder != "" {
			w.placeholder = placeholder
		}
	}
}

// WithInline renders the widget inline instead of as a floating
// panel. Inline is terminal: the widget never transitions out of it.
func WithInline() Option {
	return func(w *Widget) {
		w.panel = PanelInline
	}
}

// WithNotify registers a callback fired after every observable state
// change. The callback runs outside the widget's lock and may call
// back into the widget; it must be fast, as it runs on the goroutine
// that caused the change.
func WithNotify(fn func()) Option {
	return func(w *Widget) {
		w.notify = fn
	}
}
