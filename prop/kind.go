package prop

//go:generate go tool stringer --linecomment --type Kind,Scope --output kind_string.go

import "strings"

// Kind classifies a leaf by the tokens it contains.
type Kind int

const (
	KindNone     Kind = iota // none
	KindTemplate             // template
	KindAction               // action
)

// Scope names the tree an [Action] reads from.
type Scope int

const (
	ScopeSources Scope = iota // sources
	ScopeDest                 // dest
)

const templateVerb = "template"

// Classify reports whether v is a template marker, holds an action token,
// or neither.
//
// v is a template marker if it is a string ending in "}}" containing a
// token, suppressed or not, whose verb is template. Otherwise it holds an
// action if it contains at least one unsuppressed token. Non-strings and
// empty strings are [KindNone].
func Classify(v any) Kind {
	s, ok := v.(string)
	if !ok || s == "" {
		return KindNone
	}

	return classify(s, scanTokens(s))
}

func classify(s string, tokens []token) Kind {
	if strings.HasSuffix(s, "}}") {
		for _, t := range tokens {
			if t.isTemplate() {
				return KindTemplate
			}
		}
	}

	for _, t := range tokens {
		if !t.suppressed() {
			return KindAction
		}
	}

	return KindNone
}
