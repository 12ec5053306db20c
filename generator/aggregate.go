package generator

import (
	"errors"

	"github.com/insertinterestingnamehere/c2chapel/parser"
)

// aggregateDef returns the defined struct/union embedded in t, looking
// through pointers, or nil. Used to emit nested definitions before the
// containing aggregate references them by name.
func aggregateDef(t parser.TypeExpr) *parser.Aggregate {
	switch t := t.(type) {
	case *parser.Aggregate:
		if t.Defined {
			return t
		}
	case *parser.Pointer:
		return aggregateDef(t.Elem)
	}
	return nil
}

// emitAggregate translates one struct or union. An explicit name takes
// precedence over the aggregate's own tag (the typedef pass names the
// aggregate after the typedef); with neither, the aggregate cannot be
// referenced and nothing is emitted. anon controls the linkage spelling:
// named aggregates carry the C tag in quotes, typedef-primary ones do not.
func (g *Generator) emitAggregate(agg *parser.Aggregate, name string, anon bool) {
	if name == "" {
		if agg.Tag == "" {
			return
		}
		name = agg.Tag
	}

	kind := agg.Kind.String()
	if err := checkDefName(name, kind); err != nil {
		g.comment("Unable to generate " + kind + " '" + name + "' because its name is a Chapel keyword")
		g.blank()
		return
	}

	g.found[name] = true

	// Forward declaration: register the name, defer the body to a later
	// definition of the same tag.
	if !agg.Defined {
		return
	}

	var header string
	keyword := "record"
	if agg.Kind == parser.UnionKind {
		keyword = "union"
	}
	if anon {
		header = "extern " + keyword + " " + name + " {"
	} else {
		header = "extern \"" + kind + " " + name + "\" " + keyword + " " + name + " {"
	}

	var members []string
	var warnKeyword bool
	var fieldErr error
	for _, f := range agg.Fields {
		if inner := aggregateDef(f.Type); inner != nil {
			g.emitAggregate(inner, "", false)
		}

		if isChapelKeyword(f.Name) {
			// All or nothing: a partially translated struct would have
			// misleading field offsets.
			members = nil
			warnKeyword = true
			break
		}
		ty, err := g.resolveType(f.Type)
		if err != nil {
			fieldErr = err
			break
		}
		members = append(members, "  var "+f.Name+" : "+ty+";")
	}

	if fieldErr != nil {
		var missing *MissingNameError
		if errors.As(fieldErr, &missing) {
			g.comment("Unable to generate " + kind + " '" + name + "': an anonymous union or struct was encountered within")
		} else {
			g.comment("Unable to generate " + kind + " '" + name + "': " + fieldErr.Error())
		}
		g.blank()
		return
	}

	if warnKeyword {
		g.comment("Fields omitted because one or more of the identifiers is a Chapel keyword")
	}
	if len(members) == 0 {
		g.println(header + "}")
	} else {
		g.println(header)
		for _, m := range members {
			g.println(m)
		}
		g.println("}")
	}
	g.blank()
}
