package gradle

import (
	"regexp"
	"sync"

	"github.com/jfrog/gofrog/log"
)

const androidBlockName = "android"

var (
	blockRegexCache sync.Map
)

type braceState int

const (
	stateNormal braceState = iota
	stateSingleQuote
	stateDoubleQuote
)

// ExtractBlockWithBraces returns the comment-free content strictly between the braces of the
// first `blockName {` block. Occurrences inside comments or string literals, or as part of a longer
// identifier, are ignored. The second return value is false when the block is missing or its
// braces never balance.
func ExtractBlockWithBraces(text, blockName string) (string, bool) {
	stripped := StripComments(text)
	open := findBlockOpening(stripped, blockName)
	if open < 0 {
		return "", false
	}
	closing := matchingBrace(stripped, open)
	if closing < 0 {
		log.Debug("Unbalanced braces in " + blockName + " block")
		return "", false
	}
	return stripped[open+1 : closing], true
}

func ExtractAndroidBlock(text string) (string, bool) {
	return ExtractBlockWithBraces(text, androidBlockName)
}

// findBlockOpening returns the index of the opening brace of the first blockName block outside
// string literals, or -1.
func findBlockOpening(stripped, blockName string) int {
	loc := blockRegex(blockName).FindStringIndex(blankStrings(stripped))
	if loc == nil {
		return -1
	}
	return loc[1] - 1
}

func blockRegex(blockName string) *regexp.Regexp {
	if cached, ok := blockRegexCache.Load(blockName); ok {
		return cached.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(blockName) + `\s*\{`)
	blockRegexCache.Store(blockName, re)
	return re
}

// matchingBrace returns the index of the brace closing the one at open, or -1.
// Braces inside quoted strings do not count.
func matchingBrace(content string, open int) int {
	depth := 0
	state := stateNormal
	for i := open; i < len(content); i++ {
		char := content[i]
		switch state {
		case stateSingleQuote, stateDoubleQuote:
			if char == '\\' {
				i++
				continue
			}
			if (state == stateSingleQuote && char == '\'') || (state == stateDoubleQuote && char == '"') {
				state = stateNormal
			}
		default:
			switch char {
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return i
				}
			}
		}
	}
	return -1
}

// topLevel keeps the statements at depth zero of a block body and blanks the bodies of nested
// blocks (their braces stay). String literals at depth zero are preserved.
func topLevel(body string) string {
	out := []byte(body)
	depth := 0
	state := stateNormal
	for i := 0; i < len(out); i++ {
		char := out[i]
		switch state {
		case stateSingleQuote, stateDoubleQuote:
			if char == '\\' {
				if depth > 0 {
					out[i] = ' '
					if i+1 < len(out) && out[i+1] != '\n' {
						out[i+1] = ' '
					}
				}
				i++
				continue
			}
			if (state == stateSingleQuote && char == '\'') || (state == stateDoubleQuote && char == '"') {
				state = stateNormal
			}
		default:
			switch char {
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			case '{':
				depth++
				continue
			case '}':
				if depth > 0 {
					depth--
				}
				continue
			}
		}
		if depth > 0 && char != '\n' {
			out[i] = ' '
		}
	}
	return string(out)
}
