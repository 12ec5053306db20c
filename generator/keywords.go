package generator

import "fmt"

// chapelKeywords is the set of Chapel reserved words. A C identifier that
// collides with one of these cannot appear verbatim in generated code.
var chapelKeywords = map[string]bool{
	"align": true, "as": true, "atomic": true, "begin": true, "break": true,
	"by": true, "bytes": true, "class": true, "cobegin": true,
	"coforall": true, "config": true, "const": true, "continue": true,
	"delete": true, "dmapped": true, "do": true, "domain": true,
	"else": true, "enum": true, "except": true, "export": true,
	"extern": true, "for": true, "forall": true, "if": true, "in": true,
	"index": true, "inline": true, "inout": true, "iter": true,
	"label": true, "lambda": true, "let": true, "local": true,
	"locale": true, "module": true, "new": true, "nil": true,
	"noinit": true, "on": true, "only": true, "otherwise": true,
	"out": true, "param": true, "private": true, "proc": true,
	"public": true, "record": true, "reduce": true, "ref": true,
	"require": true, "return": true, "scan": true, "select": true,
	"serial": true, "sparse": true, "string": true, "subdomain": true,
	"sync": true, "then": true, "type": true, "union": true, "use": true,
	"var": true, "when": true, "where": true, "while": true, "with": true,
	"yield": true, "zip": true,
}

func isChapelKeyword(name string) bool {
	return chapelKeywords[name]
}

// argName returns a usable formal argument name. Empty names get a
// positional placeholder; keyword collisions get a suffix. Argument names
// are call-site sugar, so renaming them is safe, unlike definition names.
func argName(name string, index int) string {
	if name == "" {
		return fmt.Sprintf("arg%d", index)
	}
	if isChapelKeyword(name) {
		return name + "_arg"
	}
	return name
}

// checkDefName rejects defining identifiers that collide with a keyword.
func checkDefName(name, context string) error {
	if isChapelKeyword(name) {
		return &ReservedWordError{Name: name, Context: context}
	}
	return nil
}
