package generator

import (
	"strings"

	"github.com/insertinterestingnamehere/c2chapel/parser"
)

// isAggregateType reports whether t is a struct or union, following the
// typedef table through named indirections.
func (g *Generator) isAggregateType(t parser.TypeExpr) bool {
	switch t := t.(type) {
	case *parser.Aggregate:
		return true
	case *parser.Named:
		if td := g.typedefs[t.Name]; td != nil {
			return g.isAggregateType(td.Type)
		}
	}
	return false
}

// isVaListParam detects a va_list parameter structurally, before
// resolution. On some ABIs va_list is an array type, so one array level is
// looked through.
func isVaListParam(t parser.TypeExpr) bool {
	if a, ok := t.(*parser.Array); ok {
		t = a.Elem
	}
	n, ok := t.(*parser.Named)
	if !ok {
		return false
	}
	switch n.Name {
	case "va_list", "__builtin_va_list", "__gnuc_va_list":
		return true
	}
	return false
}

// intentInfo computes how one parameter is passed. A pointer to anything
// but char, unsigned char, void, or a function is an aliasable reference;
// the raw pointer rendering is kept alongside so the caller can emit a
// second pointer-style overload.
func (g *Generator) intentInfo(t parser.TypeExpr) (intent, typeName, ptrTypeName string, err error) {
	ptr, isPtr := t.(*parser.Pointer)
	if isPtr {
		ptrTypeName, err = g.resolveType(t)
		if err != nil {
			return "", "", "", err
		}
	}

	if isPtr && !isNamed(ptr.Elem, "char") && !isNamed(ptr.Elem, "unsigned char") &&
		!isNamed(ptr.Elem, "void") && ptrTypeName != "c_fn_ptr" {
		if ptr.ConstElem {
			intent = "const ref"
		} else {
			intent = "ref"
		}
		typeName, err = g.resolveType(ptr.Elem)
		return intent, typeName, ptrTypeName, err
	}

	typeName, err = g.resolveType(t)
	return "", typeName, ptrTypeName, err
}

// computeArgs renders the reference-style and pointer-style formal lists.
// The two differ only for reference-intent parameters.
func (g *Generator) computeArgs(fn *parser.FuncDecl) (formals, ptrFormals []string, err error) {
	for i, arg := range fn.Params {
		intent, typeName, ptrTypeName, err := g.intentInfo(arg.Type)
		if err != nil {
			return nil, nil, err
		}
		// A void parameter has no rendering and is excluded.
		if typeName == "" {
			continue
		}

		if intent == "" {
			if g.isAggregateType(arg.Type) {
				// Aggregates passed by value get an explicit copy intent.
				intent = "in "
			}
		} else {
			intent += " "
		}

		name := argName(arg.Name, i)
		formals = append(formals, intent+name+" : "+typeName)
		if ptrTypeName != "" {
			ptrFormals = append(ptrFormals, name+" : "+ptrTypeName)
		} else {
			ptrFormals = append(ptrFormals, intent+name+" : "+typeName)
		}
	}

	if fn.Variadic {
		formals = append(formals, varargsStr)
		ptrFormals = append(ptrFormals, varargsStr)
	}
	return formals, ptrFormals, nil
}

// emitFunction translates one prototype into up to three overloads bound
// to the same external symbol: the reference-intent form, the raw-pointer
// form when it differs, and a no-varargs form so zero-extra-argument calls
// of a variadic function are possible.
func (g *Generator) emitFunction(fn *parser.FuncDecl) {
	if isChapelKeyword(fn.Name) {
		g.comment("Unable to generate function '" + fn.Name + "' because its name is a Chapel keyword")
		g.blank()
		return
	}
	for _, arg := range fn.Params {
		if isVaListParam(arg.Type) {
			g.comment("Unable to generate function '" + fn.Name + "' due to va_list argument")
			g.blank()
			return
		}
	}

	retType, err := g.resolveType(fn.Return)
	if err != nil {
		g.comment("Unable to generate function '" + fn.Name + "': " + err.Error())
		g.blank()
		return
	}
	if retType == "" {
		retType = "void"
	}

	formals, ptrFormals, err := g.computeArgs(fn)
	if err != nil {
		g.comment("Unable to generate function '" + fn.Name + "': " + err.Error())
		g.blank()
		return
	}

	args := strings.Join(formals, ", ")
	ptrArgs := strings.Join(ptrFormals, ", ")

	g.println("extern proc " + fn.Name + "(" + args + ") : " + retType + ";")
	g.blank()
	if ptrArgs != args {
		g.println("extern proc " + fn.Name + "(" + ptrArgs + ") : " + retType + ";")
		g.blank()
	}

	if len(formals) > 0 && formals[len(formals)-1] == varargsStr {
		g.comment("Overload for empty varargs")
		g.println("extern proc " + fn.Name + "(" + strings.Join(formals[:len(formals)-1], ", ") + ") : " + retType + ";")
		g.blank()
	}
}
