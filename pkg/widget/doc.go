// Package widget implements an embeddable chat widget for a
// question-answering backend.
//
// # Overview
//
// The widget owns three pieces of state and nothing else:
//
//   - the Conversation: an append-only, ordered sequence of messages
//   - the request lifecycle: at most one question in flight at a time,
//     with cooperative cancellation
//   - the panel: whether the widget renders inline or as a floating
//     panel, and whether that panel is open
//
// It is presentation-agnostic: a host (a bubbletea program, a test, or
// any other event loop) drives it through Submit, Cancel, Open and
// Close, and observes it through Messages, Pending, Banner and Panel.
//
// # Quick Start
//
//	client, err := api.NewClient(apiKey, baseURL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w := widget.New(client,
//	    widget.WithTitle("Product Q&A"),
//	    widget.WithNotify(func() { redraw() }),
//	)
//
//	w.Submit("How do I rotate my API key?")
//
// Submit returns immediately; the answer (or a user-readable error)
// arrives later as an appended assistant message, announced through
// the notify callback. Cancel aborts the in-flight question without
// appending anything.
//
// # Error handling
//
// The widget never returns errors and never panics: every failure is
// converted into an assistant message flagged IsError, plus a
// transient banner, and the widget stays interactive.
package widget
