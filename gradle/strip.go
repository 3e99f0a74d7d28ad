package gradle

import (
	"strings"

	"github.com/jfrog/gofrog/log"
)

// StripComments removes // and /* */ comments while keeping string literals verbatim.
// A block comment is replaced by a single space followed by the line breaks it spanned,
// so line-anchored patterns keep working on the result.
func StripComments(content string) string {
	var result strings.Builder
	result.Grow(len(content))
	i := 0
	for i < len(content) {
		char := content[i]

		if isQuote(char) {
			end, _ := stringEnd(content, i)
			result.WriteString(content[i:end])
			i = end
			continue
		}

		if char == '/' && i+1 < len(content) && content[i+1] == '/' {
			for i < len(content) && content[i] != '\n' {
				i++
			}
			continue
		}

		if char == '/' && i+1 < len(content) && content[i+1] == '*' {
			result.WriteByte(' ')
			i += 2
			for i < len(content) && !(content[i] == '*' && i+1 < len(content) && content[i+1] == '/') {
				if content[i] == '\n' {
					result.WriteByte('\n')
				}
				i++
			}
			if i >= len(content) {
				log.Debug("Unterminated block comment in Gradle script")
			}
			i += 2
			continue
		}

		result.WriteByte(char)
		i++
	}
	return result.String()
}

// blankStrings keeps the quote characters of every literal but replaces its content with spaces.
// The result has the same length as the input, so indexes found in it are valid in the input.
func blankStrings(content string) string {
	out := []byte(content)
	i := 0
	for i < len(out) {
		if !isQuote(out[i]) {
			i++
			continue
		}
		end, closed := stringEnd(content, i)
		last := end
		if closed {
			last = end - 1
		}
		for j := i + 1; j < last; j++ {
			if out[j] != '\n' {
				out[j] = ' '
			}
		}
		i = end
	}
	return string(out)
}

// stringEnd returns the index just past the literal opening at start, and whether the literal is closed.
// An unterminated literal runs to the end of the content.
func stringEnd(content string, start int) (int, bool) {
	quote := content[start]
	for i := start + 1; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case quote:
			return i + 1, true
		}
	}
	log.Debug("Unterminated string literal in Gradle script")
	return len(content), false
}
