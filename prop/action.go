package prop

import (
	"log/slog"
	"strconv"
	"strings"
)

const (
	destMarker = "__dest"
	separator  = "::"
	quote      = '`'
)

// Action is a parsed action token.
type Action struct {
	// Verb is the lower-cased operation name, e.g. "get".
	Verb string
	// Params are the backtick-quoted arguments of the verb, unquoted.
	Params []string
	// Src are the comma-separated operands following "::", trimmed.
	// An empty operand list yields a single empty string.
	Src []string
	// OriginalText is the token exactly as it appears in its leaf.
	OriginalText string
	// Depth is the declared minimum pass, 0 if none.
	Depth int
	// Scope is the tree Src paths are resolved against.
	Scope Scope
}

// ParseAction parses the first action token in s. If s contains no token
// the zero Action is returned.
func ParseAction(s string) Action {
	tokens := scanTokens(s)
	if len(tokens) == 0 {
		return Action{}
	}

	return tokens[0].action(s)
}

// ParseActions parses every action token in s, in order.
func ParseActions(s string) []Action {
	tokens := scanTokens(s)
	actions := make([]Action, len(tokens))

	for i, t := range tokens {
		actions[i] = t.action(s)
	}

	return actions
}

func (t token) action(input string) Action {
	a := Action{
		OriginalText: t.text(input),
		Depth:        t.depth,
		Scope:        ScopeSources,
	}

	body, dest := stripDestMarker(t.body)
	if dest {
		a.Scope = ScopeDest
	}

	body, a.Params = splitParams(body)

	head, rest, _ := strings.Cut(body, separator)
	rest, _, _ = strings.Cut(rest, separator)

	a.Verb = strings.ToLower(strings.TrimSpace(head))
	a.Src = strings.Split(rest, ",")

	for i := range a.Src {
		a.Src[i] = strings.TrimSpace(a.Src[i])
	}

	return a
}

// stripDestMarker removes every __dest marker from body. A marker may be
// wrapped in backticks and preceded by a comma and one whitespace byte,
// all of which are removed with it.
func stripDestMarker(body string) (string, bool) {
	found := false

	for from := 0; ; {
		i := strings.Index(body[from:], destMarker)
		if i < 0 {
			return body, found
		}

		start := from + i
		end := start + len(destMarker)

		if (start > 0 && isWordByte(body[start-1])) ||
			(end < len(body) && isWordByte(body[end])) {
			from = start + 1

			continue
		}

		if start > 0 && body[start-1] == quote {
			start--
		}

		if start > 0 && isSpace(body[start-1]) {
			start--
		}

		if start > 0 && body[start-1] == ',' {
			start--
		}

		if end < len(body) && body[end] == quote {
			end++
		}

		body = body[:start] + body[end:]
		from = start
		found = true
	}
}

// splitParams extracts the quoted parameters of a "(...)::" group and
// collapses the group into "::". Without such a group, params is empty.
func splitParams(body string) (string, []string) {
	params := []string{}

	open := strings.IndexByte(body, '(')
	if open < 0 {
		return body, params
	}

	n := strings.Index(body[open:], ")"+separator)
	if n < 0 {
		return body, params
	}

	closing := open + n

	inner := body[open+1 : closing]
	for {
		i := strings.IndexByte(inner, quote)
		if i < 0 {
			break
		}

		j := strings.IndexByte(inner[i+1:], quote)
		if j < 0 {
			break
		}

		params = append(params, inner[i+1:i+1+j])
		inner = inner[i+j+2:]
	}

	return body[:open] + separator + body[closing+1+len(separator):], params
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}

// String renders a in canonical token syntax.
func (a Action) String() string {
	var b strings.Builder

	b.WriteString(openDelim)
	b.WriteString(keyword)

	if a.Depth > 0 {
		b.WriteByte('(')
		b.WriteString(strconv.Itoa(a.Depth))
		b.WriteByte(')')
	}

	b.WriteString(arrow)
	b.WriteString(a.Verb)

	args := make([]string, 0, len(a.Params)+1)
	for _, p := range a.Params {
		args = append(args, string(quote)+p+string(quote))
	}

	if a.Scope == ScopeDest {
		args = append(args, string(quote)+destMarker+string(quote))
	}

	if len(args) > 0 {
		b.WriteByte('(')
		b.WriteString(strings.Join(args, ", "))
		b.WriteByte(')')
	}

	b.WriteString(separator)
	b.WriteString(strings.Join(a.Src, ","))
	b.WriteString(closeDelim)

	return b.String()
}

// LogValue implements slog.LogValuer.
func (a Action) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("verb", a.Verb),
		slog.Int("depth", a.Depth),
		slog.Any("params", a.Params),
		slog.Any("src", a.Src),
		slog.String("scope", a.Scope.String()),
	)
}

func (a Action) param(i int) string {
	if i < len(a.Params) {
		return a.Params[i]
	}

	return ""
}

func (a Action) src(i int) string {
	if i < len(a.Src) {
		return a.Src[i]
	}

	return ""
}
