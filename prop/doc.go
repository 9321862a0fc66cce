// Package prop resolves action tokens embedded in the string leaves of nested
// key/value trees.
//
// A Destination tree holds literal values alongside tokens such as
//
//	{{openr->get()::products.0.model}}
//	{{openr->join(`, `)::first,last}}
//	{{openr(2)->add()::subtotal,tax}}
//
// and [Resolver.Run] replaces each token with a value computed from a Sources
// tree (or, with the `__dest` marker, from Destination itself).
//
// # Trees
//
// A tree is built from map[string]any, [yaml.MapSlice], []any and scalars.
// Paths are dot-separated keys; numeric keys index sequences. Lookups that
// fail return [NotFound], which is distinct from a present nil.
//
// # Tokens
//
//	token    := "{{" "!"* "openr" ["(" DIGIT ")"] "->" [verb ["(" params ")"]] "::" srclist "}}"
//	params   := "`" text "`" ("," "`" text "`")*
//	srclist  := path ("," path)*
//
// The digit is the token's depth: a token with depth N > 0 is not evaluated
// until action pass N+1. A leading "!" suppresses the token; suppressed
// tokens are inert until a template copies them.
//
// # Templates
//
// A leaf holding {{openr->template()::body,driver}} is replaced by one copy
// of the Destination subtree at body for each element of the Sources
// sequence at driver. Inside each copy one "!" is removed from every token
// and every "[]" is replaced by the element index. The `child` parameter
// inlines a body into another body before expansion.
//
// # Verbs
//
//	get        value at src[0]
//	timestamp  current time as epoch seconds, or formatted with layout src[0]
//	join       values at every src joined by params[0]
//	implode    elements of the sequence at src[0] joined by params[0]
//	explode    string at src[0] split by params[0]
//	add        sum of every src value, sequences contributing each element
//	subtract   |src[0] - every other src value|, src[0] taken literally
//	regexp     src[0] with params[0] replaced by the last src (backticks trimmed)
//
// Unknown verbs leave the token untouched.
package prop
