// Package render provides markdown rendering utilities for terminal output.
package render

import "github.com/dmoura/askbox/internal/config"

// Options configures the markdown renderer behavior.
type Options struct {
	// Width defines the maximum output width (default: 80)
	Width int

	// Style defines the glamour theme: "dark", "light", "notty", ...
	Style string

	// EnableEmoji converts :emoji: to unicode characters
	EnableEmoji bool

	// PreserveNewLines preserves original line breaks
	PreserveNewLines bool

	// TableWrap enables word wrap in table cells
	TableWrap bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// FromConfig builds Options from the user's markdown configuration.
func FromConfig(mc config.MarkdownConfig) Options {
	opts := DefaultOptions()
	if mc.Style != "" {
		opts.Style = mc.Style
	}
	opts.EnableEmoji = mc.EnableEmoji
	opts.PreserveNewLines = mc.PreserveNewLines
	opts.TableWrap = mc.TableWrap
	return opts
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}
