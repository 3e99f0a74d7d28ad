package gradle

// Scanner is a forward-only cursor over Gradle script text.
// It never fails: malformed input simply drives the cursor to the end.
type Scanner struct {
	src string
	pos int
}

func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

func (s *Scanner) Pos() int {
	return s.pos
}

func (s *Scanner) Len() int {
	return len(s.src)
}

func (s *Scanner) EOF() bool {
	return s.pos >= len(s.src)
}

// Reset rewinds the cursor for a fresh pass.
func (s *Scanner) Reset() {
	s.pos = 0
}

// Peek returns the byte under the cursor, or 0 at end of input.
func (s *Scanner) Peek() byte {
	return s.PeekAt(0)
}

func (s *Scanner) PeekAt(offset int) byte {
	i := s.pos + offset
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

func (s *Scanner) Advance() {
	if s.pos < len(s.src) {
		s.pos++
	}
}

// SkipWhitespaceAndComments moves past whitespace, // line comments and /* block comments */.
// An unterminated block comment consumes the rest of the input.
func (s *Scanner) SkipWhitespaceAndComments() {
	for !s.EOF() {
		c := s.Peek()
		switch {
		case isSpace(c):
			s.pos++
		case c == '/' && s.PeekAt(1) == '/':
			s.skipLineComment()
		case c == '/' && s.PeekAt(1) == '*':
			s.skipBlockComment()
		default:
			return
		}
	}
}

// SkipInlineSpace moves past spaces and tabs only, stopping at line breaks.
func (s *Scanner) SkipInlineSpace() {
	for !s.EOF() && (s.Peek() == ' ' || s.Peek() == '\t') {
		s.pos++
	}
}

func (s *Scanner) skipLineComment() {
	for !s.EOF() && s.Peek() != '\n' {
		s.pos++
	}
}

func (s *Scanner) skipBlockComment() {
	s.pos += 2
	for !s.EOF() {
		if s.Peek() == '*' && s.PeekAt(1) == '/' {
			s.pos += 2
			return
		}
		s.pos++
	}
}

// MatchKeyword consumes word if it appears at the cursor as a whole word,
// i.e. it is neither preceded nor followed by an identifier character.
func (s *Scanner) MatchKeyword(word string) bool {
	if word == "" || s.pos+len(word) > len(s.src) {
		return false
	}
	if s.src[s.pos:s.pos+len(word)] != word {
		return false
	}
	if s.pos > 0 && isIdentChar(s.src[s.pos-1]) {
		return false
	}
	if end := s.pos + len(word); end < len(s.src) && isIdentChar(s.src[end]) {
		return false
	}
	s.pos += len(word)
	return true
}

// SkipIdentifier consumes a run of identifier characters and reports whether anything was consumed.
func (s *Scanner) SkipIdentifier() bool {
	start := s.pos
	for !s.EOF() && isIdentChar(s.Peek()) {
		s.pos++
	}
	return s.pos > start
}

// ExtractQuotedString reads the literal starting at the cursor (single or double quoted).
// Escapes are copied through as two characters. The second return value is false when the
// cursor is not at a quote, or when the input ends before the closing quote; in the latter
// case the cursor is left at the end of the input.
func (s *Scanner) ExtractQuotedString() (string, bool) {
	quote := s.Peek()
	if !isQuote(quote) {
		return "", false
	}
	start := s.pos + 1
	for i := start; i < len(s.src); i++ {
		switch s.src[i] {
		case '\\':
			i++
		case quote:
			s.pos = i + 1
			return s.src[start:i], true
		}
	}
	s.pos = len(s.src)
	return "", false
}

// SkipBalancedParens consumes a parenthesized group starting at the cursor, ignoring
// parentheses inside strings and comments. Unbalanced input consumes to the end.
func (s *Scanner) SkipBalancedParens() {
	if s.Peek() != '(' {
		return
	}
	depth := 0
	for !s.EOF() {
		s.SkipWhitespaceAndComments()
		switch c := s.Peek(); {
		case isQuote(c):
			s.ExtractQuotedString()
			continue
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				s.pos++
				return
			}
		}
		s.Advance()
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
