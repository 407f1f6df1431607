package render

import (
	"strings"
	"testing"

	"github.com/dmoura/askbox/internal/config"
)

func TestMarkdown(t *testing.T) {
	out, err := Markdown("# Title\n\nSome **bold** text.", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown() returned error: %v", err)
	}

	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output missing heading text: %q", out)
	}
	if !strings.Contains(out, "bold") {
		t.Errorf("rendered output missing body text: %q", out)
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	content := strings.Repeat("word ", 50)

	out, err := MarkdownWithWidth(content, 40)
	if err != nil {
		t.Fatalf("MarkdownWithWidth() returned error: %v", err)
	}

	for _, line := range strings.Split(out, "\n") {
		// Glamour pads to the wrap width; allow a small margin for
		// ANSI escapes and padding.
		if len(stripANSI(line)) > 60 {
			t.Errorf("line exceeds wrap width: %q", line)
		}
	}
}

func TestMarkdown_EmptyContent(t *testing.T) {
	out, err := Markdown("", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown() returned error for empty input: %v", err)
	}
	_ = out
}

func TestMarkdown_PoolReuse(t *testing.T) {
	opts := DefaultOptions().WithWidth(60)

	for i := 0; i < 5; i++ {
		if _, err := Markdown("repeat render", opts); err != nil {
			t.Fatalf("Markdown() iteration %d returned error: %v", i, err)
		}
	}
}

func TestFromConfig(t *testing.T) {
	mc := config.MarkdownConfig{
		Style:            "light",
		EnableEmoji:      false,
		PreserveNewLines: false,
		TableWrap:        false,
	}

	opts := FromConfig(mc)
	if opts.Style != "light" {
		t.Errorf("Style = %q, want light", opts.Style)
	}
	if opts.EnableEmoji {
		t.Error("EnableEmoji should be false")
	}
	if opts.Width != 80 {
		t.Errorf("Width = %d, want default 80", opts.Width)
	}
}

func TestFromConfig_EmptyStyleKeepsDefault(t *testing.T) {
	opts := FromConfig(config.MarkdownConfig{})
	if opts.Style != "dark" {
		t.Errorf("Style = %q, want dark", opts.Style)
	}
}

// stripANSI removes escape sequences so line lengths can be measured.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
