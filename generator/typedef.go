package generator

import (
	"sort"

	"github.com/insertinterestingnamehere/c2chapel/parser"
)

// flushTypedefs runs the deferred second pass over the typedef table,
// in name-sorted order so output is deterministic regardless of input
// declaration order. Names matching the fake-header ignore set are emitted
// inside a disabled block for traceability.
func (g *Generator) flushTypedefs() {
	ignored := make(map[string]*parser.TypedefDecl)
	for name := range g.opts.Ignores {
		if td, ok := g.typedefs[name]; ok {
			ignored[name] = td
			g.typedefs[name] = nil
		}
	}

	live := 0
	for _, td := range g.typedefs {
		if td != nil {
			live++
		}
	}
	if live != 0 {
		g.comment("==== c2chapel typedefs ====")
		g.blank()
		g.emitTypedefs(g.typedefs)
	}

	if len(ignored) != 0 {
		g.comment("c2chapel thinks these typedefs are from the fake headers:")
		g.println("/*")
		g.emitTypedefs(ignored)
		g.println("*/")
	}
}

func (g *Generator) emitTypedefs(defs map[string]*parser.TypedefDecl) {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if td := defs[name]; td != nil {
			g.emitTypedef(td)
		}
	}
}

// pointeeAggregate returns the struct/union at the end of a pointer chain,
// or nil. A typedef'd pointer to an aggregate becomes an opaque handle; the
// pointee's layout is intentionally not exposed.
func pointeeAggregate(t parser.TypeExpr) *parser.Aggregate {
	if p, ok := t.(*parser.Pointer); ok {
		if agg, ok := p.Elem.(*parser.Aggregate); ok {
			return agg
		}
		return pointeeAggregate(p.Elem)
	}
	return nil
}

// emitTypedef classifies one typedef entry and emits the matching Chapel
// declaration.
func (g *Generator) emitTypedef(td *parser.TypedefDecl) {
	switch u := td.Type.(type) {
	case *parser.Aggregate:
		switch {
		case u.Defined:
			// The typedef is the aggregate's primary external name.
			g.emitAggregate(u, td.Name, true)
		case !g.found[u.Tag]:
			kind := u.Kind.String()
			keyword := "record"
			if u.Kind == parser.UnionKind {
				keyword = "union"
			}
			g.comment("Opaque " + kind + "?")
			g.println("extern " + keyword + " " + td.Name + " {};")
			g.blank()
		default:
			g.emitTypeAlias(td)
		}

	case *parser.Pointer:
		if agg := pointeeAggregate(u); agg != nil {
			g.comment("Typedef'd pointer to " + agg.Kind.String())
			g.println("extern type " + td.Name + ";")
			g.blank()
			return
		}
		g.emitTypeAlias(td)

	case *parser.EnumSpec:
		g.comment(td.Name + " enum")
		g.println("extern type " + td.Name + " = c_int;")
		for _, name := range u.Enumerators {
			g.println("extern const " + name + " :" + td.Name + ";")
		}
		g.blank()

	default:
		g.emitTypeAlias(td)
	}
}

// emitTypeAlias emits "extern type name = underlying;". A void underlying
// type has no spelling; the alias is left opaque and the Chapel compiler
// infers compatibility structurally.
func (g *Generator) emitTypeAlias(td *parser.TypedefDecl) {
	if err := checkDefName(td.Name, "typedef"); err != nil {
		g.comment("Unable to generate type '" + td.Name + "' because its name is a Chapel keyword")
		g.blank()
		return
	}
	ty, err := g.resolveType(td.Type)
	if err != nil {
		g.comment("Unable to generate type '" + td.Name + "': " + err.Error())
		g.blank()
		return
	}
	if ty == "" {
		g.println("extern type " + td.Name + ";")
	} else {
		g.println("extern type " + td.Name + " = " + ty + ";")
	}
	g.found[td.Name] = true
	g.blank()
}
