package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanDefines(t *testing.T, src string) []string {
	t.Helper()
	names, err := ScanDefines(strings.NewReader(src))
	require.NoError(t, err)
	return names
}

func TestScanDefinesBasic(t *testing.T) {
	src := "#define FOO 1\n#define BAR 42\n"
	assert.Equal(t, []string{"FOO", "BAR"}, scanDefines(t, src))
}

func TestScanDefinesLeadingWhitespace(t *testing.T) {
	assert.Equal(t, []string{"FOO"}, scanDefines(t, "   #define FOO 7\n"))
}

func TestScanDefinesDuplicateReportedOnce(t *testing.T) {
	src := "#define FOO 1\n#define FOO 2\n#define BAR 3\n"
	assert.Equal(t, []string{"FOO", "BAR"}, scanDefines(t, src))
}

func TestScanDefinesRejectsNonIntegerValues(t *testing.T) {
	src := strings.Join([]string{
		"#define GUARD",                // no value
		"#define HEX 0x10",             // hex literal
		"#define NAME \"lib\"",         // string literal
		"#define EXPR (1 << 4)",        // expression
		"#define NEG -1",               // signed literal
		"#define FN(x) ((x) + 1)",      // function-like macro
		"#define TRAIL 5 /* extra */ ", // trailing text
		"#define OK 5",
	}, "\n")
	assert.Equal(t, []string{"OK"}, scanDefines(t, src))
}

func TestScanDefinesEmptyInput(t *testing.T) {
	assert.Empty(t, scanDefines(t, ""))
}
