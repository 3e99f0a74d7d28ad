package gradle

import (
	"regexp"
	"strings"
)

const (
	includeKeyword      = "include"
	includeBuildKeyword = "includeBuild"
)

var rootProjectNameRegex = regexp.MustCompile(`rootProject\.name\s*=\s*['"]([^'"]+)['"]`)

// ExtractAllIncludeModules returns every module declared by include statements in a settings script,
// normalized to Gradle path notation, in first-seen order without duplicates.
// Both include(":a", ":b") and Groovy's bare include ':a', ':b' forms are supported; includeBuild
// statements are skipped.
func ExtractAllIncludeModules(settings string) []string {
	var modules []string
	seen := make(map[string]struct{})
	add := func(value string) {
		modulePath := NormalizeModulePath(value)
		if modulePath == "" {
			return
		}
		if _, ok := seen[modulePath]; ok {
			return
		}
		seen[modulePath] = struct{}{}
		modules = append(modules, modulePath)
	}

	s := NewScanner(settings)
	for {
		s.SkipWhitespaceAndComments()
		if s.EOF() {
			break
		}
		switch c := s.Peek(); {
		case isQuote(c):
			// Literals outside include statements are not module declarations.
			s.ExtractQuotedString()
		case s.MatchKeyword(includeBuildKeyword):
			skipIncludeBuild(s)
		case s.MatchKeyword(includeKeyword):
			readIncludeArguments(s, add)
		case isIdentChar(c):
			s.SkipIdentifier()
		default:
			s.Advance()
		}
	}
	return modules
}

func readIncludeArguments(s *Scanner, add func(string)) {
	s.SkipInlineSpace()
	if s.Peek() == '(' {
		readParenthesizedArguments(s, add)
		return
	}
	readBareArguments(s, add)
}

// readParenthesizedArguments captures every literal up to the parenthesis closing the call,
// including literals nested in helper calls such as include(*arrayOf(":a", ":b")).
func readParenthesizedArguments(s *Scanner, add func(string)) {
	depth := 0
	for !s.EOF() {
		s.SkipWhitespaceAndComments()
		switch c := s.Peek(); {
		case isQuote(c):
			if value, ok := s.ExtractQuotedString(); ok {
				add(value)
			}
			continue
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				s.Advance()
				return
			}
		}
		s.Advance()
	}
}

// readBareArguments reads include ':a', ':b' until the end of the line or an opening brace.
// A trailing comma continues the list on the next line.
func readBareArguments(s *Scanner, add func(string)) {
	for !s.EOF() {
		s.SkipInlineSpace()
		switch c := s.Peek(); {
		case isQuote(c):
			if value, ok := s.ExtractQuotedString(); ok {
				add(value)
			}
		case c == ',':
			s.Advance()
			s.SkipWhitespaceAndComments()
		default:
			return
		}
	}
}

func skipIncludeBuild(s *Scanner) {
	s.SkipInlineSpace()
	if s.Peek() == '(' {
		s.SkipBalancedParens()
		return
	}
	for !s.EOF() && s.Peek() != '\n' {
		if isQuote(s.Peek()) {
			s.ExtractQuotedString()
			continue
		}
		s.Advance()
	}
}

// ExtractRootProjectName returns the value assigned to rootProject.name, or an empty string.
func ExtractRootProjectName(settings string) string {
	match := rootProjectNameRegex.FindStringSubmatch(StripComments(settings))
	if len(match) > 1 {
		return strings.TrimSpace(match[1])
	}
	return ""
}
