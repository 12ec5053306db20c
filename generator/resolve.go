package generator

import (
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/insertinterestingnamehere/c2chapel/parser"
)

// primitives maps C type spellings to Chapel type names. New spellings can
// be registered at runtime through a type-map file; see LoadTypeMap.
//
// Based on ChapelSysCTypes.chpl.
var primitives = map[string]string{
	"double": "c_double",
	"float":  "c_float",
	"char":   "c_char",
	"void":   "",

	"int":                "c_int",
	"unsigned":           "c_uint",
	"unsigned int":       "c_uint",
	"long":               "c_long",
	"unsigned long":      "c_ulong",
	"long long":          "c_longlong",
	"unsigned long long": "c_ulonglong",
	"signed char":        "c_schar",
	"unsigned char":      "c_uchar",
	"short":              "c_short",
	"unsigned short":     "c_ushort",
	"intptr_t":           "c_intptr",
	"uintptr_t":          "c_uintptr",
	"ptrdiff_t":          "c_ptrdiff",
	"ssize_t":            "c_ssize_t",
	"size_t":             "c_size_t",
	"wchar_t":            "c_wchar_t",
	"signed short":       "c_short",
	"signed int":         "c_int",
	"signed long long":   "c_longlong",
	"signed long":        "c_long",

	// No Chapel equivalent of extended precision; nearest supported width.
	"long double": "c_longlong",

	// Defined by the CTypes module, not ChapelSysCTypes.
	"FILE": "c_FILE",
}

func init() {
	// "long" spellings admit a trailing "int".
	for _, k := range []string{"long", "unsigned long", "long long",
		"unsigned long long", "signed long long", "signed long"} {
		primitives[k+" int"] = primitives[k]
	}

	for width := 8; width <= 64; width *= 2 {
		primitives[fmt.Sprintf("int%d_t", width)] = fmt.Sprintf("int(%d)", width)
		primitives[fmt.Sprintf("uint%d_t", width)] = fmt.Sprintf("uint(%d)", width)
	}
}

// LoadTypeMap reads extra C-to-Chapel type mappings from the [types]
// section of an ini file. Entries override the built-in registry.
func LoadTypeMap(path string) (map[string]string, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading type map: %w", err)
	}
	out := make(map[string]string)
	for _, key := range cfg.Section("types").Keys() {
		out[key.Name()] = key.Value()
	}
	return out, nil
}

func isNamed(t parser.TypeExpr, name string) bool {
	n, ok := t.(*parser.Named)
	return ok && n.Name == name
}

// resolveType maps a C type expression onto a Chapel type name. The switch
// is exhaustive over the parser's closed TypeExpr set; an unknown Named
// spelling comes back unchanged on the assumption that it names an emitted
// extern type.
func (g *Generator) resolveType(t parser.TypeExpr) (string, error) {
	switch t := t.(type) {
	case *parser.Named:
		if ch, ok := g.types[t.Name]; ok {
			return ch, nil
		}
		return t.Name, nil

	case *parser.Pointer:
		if isNamed(t.Elem, "char") {
			if t.ConstElem {
				return "c_ptrConst(c_char)", nil
			}
			return "c_ptr(c_char)", nil
		}
		if isNamed(t.Elem, "void") {
			if t.ConstElem {
				return "c_ptrConst(void)", nil
			}
			return "c_ptr(void)", nil
		}
		if _, isFn := t.Elem.(*parser.FuncPtr); isFn {
			return "c_fn_ptr", nil
		}
		elt, err := g.resolveType(t.Elem)
		if err != nil {
			return "", err
		}
		if t.ConstElem {
			return "c_ptrConst(" + elt + ")", nil
		}
		return "c_ptr(" + elt + ")", nil

	case *parser.Array:
		if t.VLA {
			return "", &UnsupportedTypeError{Shape: "variable-length array"}
		}
		elt, err := g.resolveType(t.Elem)
		if err != nil {
			return "", err
		}
		if _, nested := t.Elem.(*parser.Array); nested {
			// Multi-dimensional arrays collapse to one level of decay.
			return elt, nil
		}
		if t.ConstElem {
			return "c_ptrConst(" + elt + ")", nil
		}
		return "c_ptr(" + elt + ")", nil

	case *parser.FuncPtr:
		return "c_fn_ptr", nil

	case *parser.Aggregate:
		if t.Tag == "" {
			return "", &MissingNameError{Kind: t.Kind.String()}
		}
		return t.Tag, nil

	case *parser.EnumSpec:
		return "c_int", nil

	case *parser.Bitfield:
		return "", &UnsupportedTypeError{Shape: "bitfield"}
	}
	panic(fmt.Sprintf("resolveType: unhandled type expression %T", t))
}
