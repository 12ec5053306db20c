package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainAlias(t *testing.T) {
	out := translate(t, "typedef unsigned long myint;", Options{})

	assert.Contains(t, out, "// ==== c2chapel typedefs ====")
	assert.Contains(t, out, "extern type myint = c_ulong;")
}

func TestVoidAliasLeftOpaque(t *testing.T) {
	out := translate(t, "typedef void handle_t;", Options{})
	assert.Contains(t, out, "extern type handle_t;")
	assert.NotContains(t, out, "handle_t =")
}

func TestTypedefsSortedByName(t *testing.T) {
	out := translate(t, "typedef int zeta;\ntypedef int alpha;", Options{})

	alphaIdx := strings.Index(out, "extern type alpha")
	zetaIdx := strings.Index(out, "extern type zeta")
	assert.Greater(t, alphaIdx, -1)
	assert.Greater(t, zetaIdx, alphaIdx)
}

func TestTypedefsAlwaysLast(t *testing.T) {
	out := translate(t, "typedef int early;\nvoid later(void);", Options{})

	procIdx := strings.Index(out, "extern proc later")
	typeIdx := strings.Index(out, "extern type early")
	assert.Greater(t, procIdx, -1)
	assert.Greater(t, typeIdx, procIdx)
}

func TestTypedefWithInlineBodyEmitsUnderTypedefName(t *testing.T) {
	out := translate(t, "typedef struct foo { int x; } foo_t;", Options{})

	assert.Contains(t, out, "extern record foo_t {\n  var x : c_int;\n}\n")
	// Typedef-primary aggregates omit the quoted C tag.
	assert.NotContains(t, out, "extern \"struct foo\"")
}

func TestForwardDeclaredTagDefinedByTypedefEmitsOnce(t *testing.T) {
	src := "struct mytag;\ntypedef struct mytag { int a; } mytag;"
	out := translate(t, src, Options{})

	assert.Equal(t, 1, strings.Count(out, "record mytag {"))
	assert.Contains(t, out, "  var a : c_int;")
	// No duplicate opaque shell for the registered tag.
	assert.NotContains(t, out, "mytag {};")
}

func TestOpaqueStructTypedef(t *testing.T) {
	out := translate(t, "typedef struct internal_s internal;", Options{})

	assert.Contains(t, out, "// Opaque struct?")
	assert.Contains(t, out, "extern record internal {};")
}

func TestOpaqueUnionTypedef(t *testing.T) {
	out := translate(t, "typedef union blob_u blob;", Options{})

	assert.Contains(t, out, "// Opaque union?")
	assert.Contains(t, out, "extern union blob {};")
}

func TestTypedefAliasOfAlreadyDefinedTag(t *testing.T) {
	src := "struct X { int a; };\ntypedef struct X Y;"
	out := translate(t, src, Options{})

	assert.Contains(t, out, "extern type Y = X;")
	assert.Equal(t, 1, strings.Count(out, "record X {"))
}

func TestTypedefSameNameAsDefinedTagDeduped(t *testing.T) {
	src := "struct X { int a; };\ntypedef struct X X;"
	out := translate(t, src, Options{})

	assert.Equal(t, 1, strings.Count(out, "record X {"))
	assert.NotContains(t, out, "extern type X")
}

func TestPointerToStructTypedefBecomesHandle(t *testing.T) {
	out := translate(t, "typedef struct win *WINDOW;", Options{})

	assert.Contains(t, out, "// Typedef'd pointer to struct")
	assert.Contains(t, out, "extern type WINDOW;")
	assert.NotContains(t, out, "WINDOW =")
}

func TestPointerToUnionTypedefBecomesHandle(t *testing.T) {
	out := translate(t, "typedef union sem_u *sem_t2;", Options{})

	assert.Contains(t, out, "// Typedef'd pointer to union")
	assert.Contains(t, out, "extern type sem_t2;")
}

func TestEnumTypedefEmitsAliasAndConstants(t *testing.T) {
	out := translate(t, "typedef enum color { RED, GREEN } color_t;", Options{})

	assert.Contains(t, out, "// color_t enum")
	assert.Contains(t, out, "extern type color_t = c_int;")
	assert.Contains(t, out, "extern const RED :color_t;")
	assert.Contains(t, out, "extern const GREEN :color_t;")
}

func TestFunctionPointerTypedef(t *testing.T) {
	out := translate(t, "typedef void (*callback)(int);", Options{})
	assert.Contains(t, out, "extern type callback = c_fn_ptr;")
}

func TestArrayTypedefDecays(t *testing.T) {
	out := translate(t, "typedef int vec4[4];", Options{})
	assert.Contains(t, out, "extern type vec4 = c_ptr(c_int);")
}

func TestIgnoredTypedefsEmittedInDisabledBlock(t *testing.T) {
	out := translate(t, "typedef int size_t;\ntypedef int myint;",
		Options{Ignores: map[string]bool{"size_t": true}})

	assert.Contains(t, out, "// c2chapel thinks these typedefs are from the fake headers:")
	assert.Contains(t, out, "/*")
	assert.Contains(t, out, "*/")

	// The live alias precedes the disabled block.
	liveIdx := strings.Index(out, "extern type myint = c_int;")
	blockIdx := strings.Index(out, "/*")
	assert.Greater(t, liveIdx, -1)
	assert.Greater(t, blockIdx, liveIdx)

	ignoredIdx := strings.Index(out, "extern type size_t = c_int;")
	assert.Greater(t, ignoredIdx, blockIdx)
}

func TestNoTypedefsOption(t *testing.T) {
	out := translate(t, "typedef int myint;", Options{NoTypedefs: true})
	assert.NotContains(t, out, "myint")
}

func TestDuplicateTypedefFirstWins(t *testing.T) {
	out := translate(t, "typedef int dup_t;\ntypedef long dup_t;", Options{})

	assert.Equal(t, 1, strings.Count(out, "extern type dup_t"))
	assert.Contains(t, out, "extern type dup_t = c_int;")
}

func TestKeywordTypedefSkipped(t *testing.T) {
	out := translate(t, "typedef int domain;", Options{})

	assert.Contains(t, out, "// Unable to generate type 'domain' because its name is a Chapel keyword")
	assert.NotContains(t, out, "extern type domain")
}
