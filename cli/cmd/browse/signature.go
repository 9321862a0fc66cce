package browse

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type signature struct {
	params []string
}

// signatures lists the functions callable from a query: the helpers the
// query environment provides and the expr-lang builtins most useful on
// document trees.
var signatures = map[string]signature{
	"lookup":        {[]string{"tree", "path"}},
	"actions":       {[]string{"tree"}},
	"templates":     {[]string{"tree"}},
	"parse":         {[]string{"token"}},
	"mung.prefix":   {[]string{"list", "delim", "...item"}},
	"mung.prefixif": {[]string{"list", "delim", "keep", "...item"}},

	"len":     {[]string{"v"}},
	"keys":    {[]string{"map"}},
	"values":  {[]string{"map"}},
	"all":     {[]string{"array", "predicate"}},
	"any":     {[]string{"array", "predicate"}},
	"filter":  {[]string{"array", "predicate"}},
	"map":     {[]string{"array", "mapper"}},
	"count":   {[]string{"array", "predicate"}},
	"sum":     {[]string{"array"}},
	"join":    {[]string{"array", "separator"}},
	"split":   {[]string{"string", "separator"}},
	"replace": {[]string{"string", "old", "new"}},
	"trim":    {[]string{"string"}},
	"upper":   {[]string{"string"}},
	"lower":   {[]string{"string"}},
	"int":     {[]string{"v"}},
	"float":   {[]string{"v"}},
	"string":  {[]string{"v"}},
	"type":    {[]string{"v"}},
}

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall describes the call whose argument list contains the cursor.
type functionCall struct {
	name     string // qualified name, e.g. "mung.prefix"
	argIndex int    // 0-based
	inCall   bool
}

// detectFunctionCall finds the innermost unclosed call before cursor and
// the index of the argument being typed.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	open, depth := -1, 0

	for i := cursor - 1; i >= 0 && open < 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open
	for start > 0 && isNameByte(input[start-1]) {
		start--
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	argIndex := 0
	depth = 0

	for i := open + 1; i < cursor; i++ {
		switch input[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

func isNameByte(c byte) bool {
	return c == '.' || c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// renderSignatureHint renders the signature of name with the parameter at
// argIndex highlighted. A variadic parameter stays highlighted for every
// later argument. Unknown functions render as "".
func renderSignatureHint(name string, argIndex int) string {
	sig, ok := signatures[name]
	if !ok {
		return ""
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range sig.params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		variadic := strings.HasPrefix(param, "...")
		if argIndex == i || (variadic && argIndex > i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
