package docchunk

import (
	"regexp"
	"strings"
)

// DefaultFallbackThreshold is the content length below which the next
// extractor in the chain is attempted. Heuristic extractors tend to
// under-extract portal and index pages; anything shorter than this is
// assumed to be such a misjudgment rather than real content.
const DefaultFallbackThreshold = 200

var blankLinesRe = regexp.MustCompile(`\n{3,}`)

// CollapseBlankLines reduces runs of three or more consecutive newlines
// to a single blank line and trims surrounding whitespace.
func CollapseBlankLines(s string) string {
	return strings.TrimSpace(blankLinesRe.ReplaceAllString(s, "\n\n"))
}

// Content is the result of extracting a page: a title (possibly empty)
// and the main body as markdown.
type Content struct {
	Title    string
	Markdown string
}

// ContentExtractor derives (title, markdown) from raw page HTML using an
// ordered chain of extractors. Each attempt's output is converted to
// markdown and blank-line-collapsed; the first result at least
// FallbackThreshold characters long wins. The title always comes from
// the first extractor in the chain and is never re-derived, even when a
// later attempt supplies the body.
//
// If no attempt reaches the threshold the longest result is returned;
// deciding whether that is still viable content is the caller's policy.
type ContentExtractor struct {
	Chain     []Extractor
	Converter Converter

	// FallbackThreshold is the minimum markdown length that stops the
	// chain. Zero means DefaultFallbackThreshold.
	FallbackThreshold int
}

// Extract runs the chain against the raw HTML.
func (e *ContentExtractor) Extract(rawHTML string) (*Content, error) {
	if len(e.Chain) == 0 {
		return nil, Errorf(EINVALID, "content extractor requires at least one extractor")
	}
	if e.Converter == nil {
		return nil, Errorf(EINVALID, "content extractor requires a converter")
	}

	threshold := e.FallbackThreshold
	if threshold <= 0 {
		threshold = DefaultFallbackThreshold
	}

	content := &Content{}
	for i, extractor := range e.Chain {
		result, err := extractor.Extract(rawHTML)
		if err != nil {
			continue
		}
		if i == 0 {
			content.Title = strings.TrimSpace(result.Title)
		}
		if strings.TrimSpace(result.ContentHTML) == "" {
			continue
		}

		markdown, err := e.Converter.Convert(result.ContentHTML)
		if err != nil {
			continue
		}
		markdown = CollapseBlankLines(markdown)

		if len(markdown) >= threshold {
			content.Markdown = markdown
			return content, nil
		}
		// Under threshold: keep the best attempt so far and fall through.
		if len(markdown) > len(content.Markdown) {
			content.Markdown = markdown
		}
	}

	return content, nil
}
