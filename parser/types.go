package parser

// AggregateKind distinguishes the two C aggregate flavors, which share
// everything but the keyword and ABI-layout note.
type AggregateKind int

const (
	StructKind AggregateKind = iota
	UnionKind
)

func (k AggregateKind) String() string {
	if k == UnionKind {
		return "union"
	}
	return "struct"
}

// TypeExpr is the closed set of type shapes the parser produces. Trees are
// acyclic: aggregates refer to other aggregates only by tag name or through
// a pointer, so recursion always makes progress toward a leaf.
type TypeExpr interface {
	isTypeExpr()
}

// Named is a primitive spelling ("unsigned long long"), a typedef name, or
// a previously declared tag used as a plain type name.
type Named struct {
	Name string
}

// Pointer is a single level of indirection. ConstElem records whether the
// pointee carries a const qualifier.
type Pointer struct {
	Elem      TypeExpr
	ConstElem bool
}

// Array carries one dimension. VLA marks a variable-length dimension,
// which the resolver treats as untranslatable.
type Array struct {
	Elem      TypeExpr
	ConstElem bool
	VLA       bool
}

// FuncPtr is a function type as it appears behind a pointer declarator or
// in a parameter position.
type FuncPtr struct {
	Params   []Param
	Return   TypeExpr
	Variadic bool
}

// Aggregate is a struct or union. Defined is false for forward
// declarations and for uses of a tag without a body ("struct foo *p").
type Aggregate struct {
	Kind    AggregateKind
	Tag     string // empty for anonymous aggregates
	Fields  []Field
	Defined bool
}

// EnumSpec is an enum type. Defined is false for bare tag references.
type EnumSpec struct {
	Tag         string
	Enumerators []string
	Defined     bool
}

// Bitfield is a struct member with an explicit bit width. It has no
// fixed-size target equivalent and always fails resolution.
type Bitfield struct {
	Base  TypeExpr
	Width int
}

func (*Named) isTypeExpr()     {}
func (*Pointer) isTypeExpr()   {}
func (*Array) isTypeExpr()     {}
func (*FuncPtr) isTypeExpr()   {}
func (*Aggregate) isTypeExpr() {}
func (*EnumSpec) isTypeExpr()  {}
func (*Bitfield) isTypeExpr()  {}

// Field is one aggregate member in declaration order.
type Field struct {
	Name string
	Type TypeExpr
}

// Param is one formal parameter. Name may be empty for unnamed prototypes.
type Param struct {
	Name string
	Type TypeExpr
}

// Decl is a top-level declaration in source order.
type Decl interface {
	isDecl()
	DeclName() string
}

// FuncDecl is a function prototype (or the prototype of a definition whose
// body was skipped).
type FuncDecl struct {
	Name     string
	Return   TypeExpr
	Params   []Param
	Variadic bool
}

// VarDecl is a global variable declaration.
type VarDecl struct {
	Name string
	Type TypeExpr
}

// TypedefDecl binds a name to an underlying type expression.
type TypedefDecl struct {
	Name string
	Type TypeExpr
}

// AggregateDecl is a top-level struct/union declaration, either a forward
// declaration or a full definition.
type AggregateDecl struct {
	Aggregate *Aggregate
}

// EnumDecl is a top-level enum declaration.
type EnumDecl struct {
	Enum *EnumSpec
}

func (*FuncDecl) isDecl()      {}
func (*VarDecl) isDecl()       {}
func (*TypedefDecl) isDecl()   {}
func (*AggregateDecl) isDecl() {}
func (*EnumDecl) isDecl()      {}

func (d *FuncDecl) DeclName() string      { return d.Name }
func (d *VarDecl) DeclName() string       { return d.Name }
func (d *TypedefDecl) DeclName() string   { return d.Name }
func (d *AggregateDecl) DeclName() string { return d.Aggregate.Tag }
func (d *EnumDecl) DeclName() string      { return d.Enum.Tag }
