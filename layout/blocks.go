package layout

import "strings"

// ContentBlock is a titled group of body text inside a slide.
type ContentBlock struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SplitBlocks groups lines into content blocks. A line whose trimmed text
// starts with marker opens a new block titled with the rest of the line; any
// other line is appended to the current block's body. Lines ahead of the first
// marker form a block with an empty title.
func SplitBlocks(lines []string, marker string) []ContentBlock {
	var blocks []ContentBlock
	var body []string
	current := -1
	flush := func() {
		if current >= 0 {
			blocks[current].Body = strings.Join(body, "\n")
		}
		body = body[:0]
	}
	for _, line := range lines {
		if title, ok := cutMarker(line, marker); ok {
			flush()
			blocks = append(blocks, ContentBlock{Title: title})
			current = len(blocks) - 1
			continue
		}
		if current < 0 {
			blocks = append(blocks, ContentBlock{})
			current = 0
		}
		body = append(body, strings.TrimSpace(line))
	}
	flush()
	return blocks
}

// HasMarker reports whether any line opens a content block. Slides with
// blocks lay out in two columns; slides without stay a single column.
func HasMarker(lines []string, marker string) bool {
	for _, line := range lines {
		if _, ok := cutMarker(line, marker); ok {
			return true
		}
	}
	return false
}

// cutMarker strips a leading marker from line.
func cutMarker(line, marker string) (string, bool) {
	if marker == "" {
		return "", false
	}
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), marker)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
