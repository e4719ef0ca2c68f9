package docchunk

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title as guessed by the extractor. May be empty.
	Title string

	// ContentHTML is the main content as a reduced HTML fragment with
	// boilerplate (nav, footer, sidebar) removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown with ATX-style
	// headings (# prefixes proportional to heading level).
	Convert(html string) (string, error)
}
