// Package htmltomarkdown provides an html-to-markdown based
// implementation of docchunk.Converter.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/docchunk"
)

// Ensure Converter implements docchunk.Converter at compile time.
var _ docchunk.Converter = (*Converter)(nil)

// Converter converts HTML fragments to markdown with ATX headings, so
// that heading levels survive as countable '#' prefixes for the section
// splitter.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docchunk.Errorf(docchunk.EINVALID, "empty HTML input")
	}
	return c.conv.ConvertString(html)
}
