package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructEmission(t *testing.T) {
	out := translate(t, "struct point { int x; int y; };", Options{})

	assert.Contains(t, out,
		"extern \"struct point\" record point {\n  var x : c_int;\n  var y : c_int;\n}\n")
}

func TestUnionEmission(t *testing.T) {
	out := translate(t, "union num { int i; float f; };", Options{})

	assert.Contains(t, out,
		"extern \"union num\" union num {\n  var i : c_int;\n  var f : c_float;\n}\n")
}

func TestForwardDeclarationEmitsNothing(t *testing.T) {
	out := translate(t, "struct node;", Options{})
	assert.NotContains(t, out, "node")
}

func TestKeywordFieldDropsAllFields(t *testing.T) {
	out := translate(t, "struct bad { int count; int in; };", Options{})

	assert.Contains(t, out, "// Fields omitted because one or more of the identifiers is a Chapel keyword")
	assert.Contains(t, out, "extern \"struct bad\" record bad {}")
	// All or nothing: no partially filled body.
	assert.NotContains(t, out, "var count")
}

func TestKeywordStructNameSkipped(t *testing.T) {
	out := translate(t, "struct record { int x; };", Options{})

	assert.Contains(t, out, "// Unable to generate struct 'record' because its name is a Chapel keyword")
	assert.NotContains(t, out, "extern \"struct record\"")
}

func TestNestedTaggedStructEmittedFirst(t *testing.T) {
	out := translate(t, "struct outer { struct inner { int v; } field; };", Options{})

	innerIdx := strings.Index(out, "record inner {")
	outerIdx := strings.Index(out, "record outer {")
	assert.Greater(t, innerIdx, -1)
	assert.Greater(t, outerIdx, innerIdx)
	assert.Contains(t, out, "  var field : inner;")
}

func TestAnonymousNestedStructAbandonsAggregate(t *testing.T) {
	out := translate(t, "struct outer { struct { int v; } field; };", Options{})

	assert.Contains(t, out, "// Unable to generate struct 'outer': an anonymous union or struct was encountered within")
	assert.NotContains(t, out, "record outer {")
}

func TestBitfieldAbandonsAggregate(t *testing.T) {
	out := translate(t, "struct flags { unsigned ready : 1; };", Options{})

	assert.Contains(t, out, "// Unable to generate struct 'flags': unsupported type: bitfield")
	assert.NotContains(t, out, "record flags {")
}

func TestStructPointerFieldSelfReference(t *testing.T) {
	out := translate(t, "struct node { int v; struct node *next; };", Options{})

	assert.Contains(t, out, "  var next : c_ptr(node);")
	// The self-referential tag use must not re-emit the definition.
	assert.Equal(t, 1, strings.Count(out, "record node {"))
}

func TestDuplicateTagDefinitionAfterForwardDecl(t *testing.T) {
	out := translate(t, "struct list;\nstruct list { int len; };", Options{})

	assert.Equal(t, 1, strings.Count(out, "record list {"))
	assert.Contains(t, out, "  var len : c_int;")
}
