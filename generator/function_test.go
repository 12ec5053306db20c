package generator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insertinterestingnamehere/c2chapel/parser"
)

// translate runs the full walk over src and returns the generated Chapel.
func translate(t *testing.T, src string, opts Options) string {
	t.Helper()
	decls, err := parser.Parse(src)
	require.NoError(t, err)

	var buf bytes.Buffer
	New(&buf, opts).Run(decls, nil)
	return buf.String()
}

func TestConstPointerParamEmitsTwoOverloads(t *testing.T) {
	out := translate(t, "void f(const int *x);", Options{})

	assert.Contains(t, out, "extern proc f(const ref x : c_int) : void;")
	assert.Contains(t, out, "extern proc f(x : c_ptrConst(c_int)) : void;")
}

func TestMutablePointerParamRefIntent(t *testing.T) {
	out := translate(t, "void g(double *v);", Options{})

	assert.Contains(t, out, "extern proc g(ref v : c_double) : void;")
	assert.Contains(t, out, "extern proc g(v : c_ptr(c_double)) : void;")
}

func TestCharPointerKeepsValuePassing(t *testing.T) {
	out := translate(t, "int puts(const char *s);", Options{})

	assert.Contains(t, out, "extern proc puts(s : c_ptrConst(c_char)) : c_int;")
	assert.NotContains(t, out, "ref s")
	// Value and pointer renderings coincide, so only one overload.
	assert.Equal(t, 1, strings.Count(out, "extern proc puts("))
}

func TestVoidPointerKeepsValuePassing(t *testing.T) {
	out := translate(t, "void use(void *p);", Options{})
	assert.Contains(t, out, "extern proc use(p : c_ptr(void)) : void;")
	assert.NotContains(t, out, "ref p")
}

func TestFunctionPointerParamKeepsValuePassing(t *testing.T) {
	out := translate(t, "void on_event(void (*cb)(int));", Options{})
	assert.Contains(t, out, "extern proc on_event(cb : c_fn_ptr) : void;")
	assert.NotContains(t, out, "ref cb")
}

func TestVariadicEmitsEmptyVarargsOverload(t *testing.T) {
	out := translate(t, "int g(char *s, ...);", Options{})

	assert.Contains(t, out, "extern proc g(s : c_ptr(c_char), c__varargs ...) : c_int;")
	assert.Contains(t, out, "// Overload for empty varargs")
	assert.Contains(t, out, "extern proc g(s : c_ptr(c_char)) : c_int;")
}

func TestVariadicOnly(t *testing.T) {
	out := translate(t, "void log_all(...);", Options{})

	assert.Contains(t, out, "extern proc log_all(c__varargs ...) : void;")
	assert.Contains(t, out, "extern proc log_all() : void;")
}

func TestVaListParamSkipsFunction(t *testing.T) {
	out := translate(t, "int vlog(const char *fmt, va_list ap);", Options{})

	assert.Contains(t, out, "// Unable to generate function 'vlog' due to va_list argument")
	assert.NotContains(t, out, "extern proc vlog")
}

func TestKeywordFunctionNameSkipped(t *testing.T) {
	out := translate(t, "void begin(void);", Options{})

	assert.Contains(t, out, "// Unable to generate function 'begin' because its name is a Chapel keyword")
	assert.NotContains(t, out, "extern proc begin")
}

func TestKeywordArgRenamed(t *testing.T) {
	out := translate(t, "void f(int in);", Options{})
	assert.Contains(t, out, "extern proc f(in_arg : c_int) : void;")
}

func TestUnnamedArgGetsPositionalName(t *testing.T) {
	out := translate(t, "void f(int, char);", Options{})
	assert.Contains(t, out, "extern proc f(arg0 : c_int, arg1 : c_char) : void;")
}

func TestStructByValueGetsCopyIntent(t *testing.T) {
	src := "struct point { int x; int y; };\nvoid move(struct point p);"
	out := translate(t, src, Options{})
	assert.Contains(t, out, "extern proc move(in p : point) : void;")
}

func TestTypedefStructByValueGetsCopyIntent(t *testing.T) {
	src := "typedef struct point { int x; } point_t;\nvoid move(point_t p);"
	out := translate(t, src, Options{})
	assert.Contains(t, out, "extern proc move(in p : point_t) : void;")
}

func TestStructPointerParamRefIntent(t *testing.T) {
	src := "struct node { int v; };\nvoid visit(struct node *n);"
	out := translate(t, src, Options{})

	assert.Contains(t, out, "extern proc visit(ref n : node) : void;")
	assert.Contains(t, out, "extern proc visit(n : c_ptr(node)) : void;")
}

func TestVoidReturnNormalized(t *testing.T) {
	out := translate(t, "void nop(void);", Options{})
	assert.Contains(t, out, "extern proc nop() : void;")
}

func TestPointerReturn(t *testing.T) {
	out := translate(t, "char *strdup(const char *s);", Options{})
	assert.Contains(t, out, "extern proc strdup(s : c_ptrConst(c_char)) : c_ptr(c_char);")
}

func TestUnresolvableParamSkipsFunction(t *testing.T) {
	out := translate(t, "void h(int n, int arr[n]);", Options{})

	assert.Contains(t, out, "// Unable to generate function 'h': unsupported type: variable-length array")
	assert.NotContains(t, out, "extern proc h")
}
