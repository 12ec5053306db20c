package generator

import "fmt"

// All emitter errors are local and recoverable: the offending declaration
// is skipped with a diagnostic comment and translation continues.

// UnsupportedTypeError reports a type shape with no Chapel equivalent
// (bitfields, variable-length arrays).
type UnsupportedTypeError struct {
	Shape string
}

func (e *UnsupportedTypeError) Error() string {
	return "unsupported type: " + e.Shape
}

// ReservedWordError reports a defining identifier that collides with a
// Chapel keyword. Definitions are never renamed: a rewritten name would no
// longer bind to the real external symbol.
type ReservedWordError struct {
	Name    string
	Context string // "function", "struct", "union", "variable", "field"
}

func (e *ReservedWordError) Error() string {
	return fmt.Sprintf("%s name %q is a Chapel keyword", e.Context, e.Name)
}

// MissingNameError reports an anonymous aggregate with no usable name in
// its context; the aggregate cannot be referenced, so nothing is emitted.
type MissingNameError struct {
	Kind string
}

func (e *MissingNameError) Error() string {
	return "anonymous " + e.Kind + " has no usable name"
}
