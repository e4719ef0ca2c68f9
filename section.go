package docchunk

import (
	"regexp"
	"strings"
)

// Section is a contiguous slice of a markdown document delimited by
// heading lines. Heading is empty for a preface that appears before the
// first heading. Text retains the section's lines verbatim, including
// the heading line itself.
type Section struct {
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

// SplitSections partitions markdown into sections at heading lines
// (1-6 '#' markers, a space, then the heading text). Document order is
// preserved; sections that are empty after trimming are dropped.
func SplitSections(markdown string) []Section {
	var sections []Section
	var heading string
	var lines []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(lines, "\n"))
		if text != "" {
			sections = append(sections, Section{Heading: heading, Text: text})
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			if len(lines) > 0 {
				flush()
			}
			heading = strings.TrimSpace(m[2])
			lines = []string{line}
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		flush()
	}

	return sections
}
