package render

// Markdown renders an answer body to styled terminal output. The
// renderer comes from a pool keyed by opts; identical options reuse
// the same glamour instances across calls.
func Markdown(content string, opts Options) (string, error) {
	r, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, r)

	return r.Render(content)
}

// MarkdownWithWidth renders with the default options at the given
// width.
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}
