package prop

import "strings"

const (
	openDelim  = "{{"
	closeDelim = "}}"
	keyword    = "openr"
	arrow      = "->"
	suppress   = '!'
)

// token is one {{...}} action token located in a string.
type token struct {
	body  string // between "->" and "}}"
	start int    // offset of "{{"
	end   int    // offset just past "}}"
	bangs int    // count of "!" after "{{"
	depth int
}

func (t token) suppressed() bool { return t.bangs > 0 }

func (t token) isTemplate() bool { return strings.HasPrefix(t.body, templateVerb) }

func (t token) text(input string) string { return input[t.start:t.end] }

// scanner finds the action tokens of a string from left to right.
type scanner struct {
	input string
	pos   int
}

// scanTokens returns every token in s in order of appearance.
func scanTokens(s string) []token {
	if !strings.Contains(s, openDelim) {
		return nil
	}

	var (
		sc     = scanner{input: s}
		tokens []token
	)

	for {
		t, ok := sc.next()
		if !ok {
			return tokens
		}

		tokens = append(tokens, t)
	}
}

func (s *scanner) eof() bool { return s.pos >= len(s.input) }

func (s *scanner) rest() string { return s.input[s.pos:] }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}

	return s.input[s.pos]
}

func (s *scanner) expect(lit string) bool {
	if strings.HasPrefix(s.rest(), lit) {
		s.pos += len(lit)

		return true
	}

	return false
}

// next returns the next token at or after the current position.
// Candidates that fail to scan are skipped one byte at a time.
func (s *scanner) next() (token, bool) {
	for !s.eof() {
		i := strings.Index(s.rest(), openDelim)
		if i < 0 {
			s.pos = len(s.input)

			break
		}

		start := s.pos + i
		s.pos = start

		if t, ok := s.scan(); ok {
			return t, true
		}

		s.pos = start + 1
	}

	return token{}, false
}

// scan reads one token beginning at the current position.
func (s *scanner) scan() (token, bool) {
	t := token{start: s.pos}

	if !s.expect(openDelim) {
		return t, false
	}

	for s.peek() == suppress {
		t.bangs++
		s.pos++
	}

	if !s.expect(keyword) || isWordByte(s.peek()) {
		return t, false
	}

	if r := s.rest(); len(r) >= 3 && r[0] == '(' && isDigit(r[1]) && r[2] == ')' {
		t.depth = int(r[1] - '0')
		s.pos += 3
	}

	if !s.expect(arrow) {
		return t, false
	}

	n := strings.Index(s.rest(), closeDelim)
	if n < 0 {
		return t, false
	}

	t.body = s.input[s.pos : s.pos+n]
	s.pos += n + len(closeDelim)
	t.end = s.pos

	return t, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isWordByte(b byte) bool {
	return b == '_' || isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
