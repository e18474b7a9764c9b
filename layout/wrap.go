package layout

import (
	"math"
	"strings"
	"unicode"
)

// WrapGreedy breaks content into lines no wider than width, preferring breaks
// at whitespace and splitting words that are wider than a whole line. Explicit
// newlines always break. widthOf reports the width of a string in the same
// unit as width. Trailing whitespace is trimmed from each line.
func WrapGreedy(content string, width float64, widthOf func(string) float64) []TextLine {
	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	var lines []TextLine
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(force bool) {
		if builder.Len() == 0 {
			if force {
				lines = append(lines, TextLine{})
			}
			return
		}
		text := strings.TrimRightFunc(builder.String(), unicode.IsSpace)
		lines = append(lines, TextLine{Content: text, Width: widthOf(text)})
		builder.Reset()
		currentWidth = 0
	}

	appendToken := func(token string, w float64) {
		// whitespace never starts a line
		if builder.Len() == 0 && strings.TrimSpace(token) == "" {
			return
		}
		builder.WriteString(token)
		currentWidth += w
	}

	for _, token := range tokenize(content) {
		if token == "\n" {
			emit(true)
			continue
		}

		tokenWidth := widthOf(token)
		isSpace := strings.TrimSpace(token) == ""
		if !isSpace && currentWidth > 0 && currentWidth+tokenWidth > limit {
			emit(false)
		}
		if tokenWidth <= limit || isSpace {
			appendToken(token, tokenWidth)
			continue
		}

		for _, chunk := range splitTokenByWidth(token, limit, widthOf) {
			chunkWidth := widthOf(chunk)
			if currentWidth > 0 && currentWidth+chunkWidth > limit {
				emit(false)
			}
			appendToken(chunk, chunkWidth)
		}
	}

	emit(len(lines) == 0)
	return lines
}

func tokenize(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, widthOf func(string) float64) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var runes []rune
	for _, r := range token {
		runes = append(runes, r)
		if len(runes) > 1 && widthOf(string(runes)) > limit {
			parts = append(parts, string(runes[:len(runes)-1]))
			runes = []rune{r}
		}
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
