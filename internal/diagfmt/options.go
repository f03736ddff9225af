package diagfmt

// Options controls diagnostic rendering.
type Options struct {
	// Color enables ANSI coloring of severities and carets.
	Color bool
	// Context enables printing the offending source line with an
	// underline below it.
	Context bool
}
