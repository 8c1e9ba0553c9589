// Package template implements the small directive language used by the
// project templates.
//
// Text passes through unchanged except for tags:
//
//	<%= expr %>   output, XML-escaped
//	<%- expr %>   output, raw
//	<% stmt %>    control flow (if / else if / else / forEach)
//	<%# ... %>    comment, produces nothing
//	<%%           a literal "<%"
//	... -%>       any tag closed this way swallows the newline after it
//
// Expressions are deliberately narrow: identifiers, string, number and
// boolean literals, list literals, parentheses, the operators ! + - === !==
// == != && ||, indexing, .length, a fixed set of string and list methods and
// the capitalize builtin. Anything else is rejected when the template is
// parsed, so no template can run arbitrary code.
//
// Every variable a template mentions must be supplied. The check is made over
// the whole template before any output is written, so a missing variable is
// reported even when it only appears in a branch that would not execute.
package template
