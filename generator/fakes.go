package generator

import (
	"bufio"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// The bundled substitute headers give the preprocessor fixed-size stand-ins
// for platform typedefs so generated bindings do not depend on the local
// libc headers.
//
//go:embed all:fakeheaders
var fakeHeadersFS embed.FS

// MaterializeFakeHeaders writes the bundled headers to a temporary
// directory suitable for a -I flag and returns its path with a cleanup
// function.
func MaterializeFakeHeaders() (string, func(), error) {
	dir, err := os.MkdirTemp("", "c2chapel-fakes-")
	if err != nil {
		return "", nil, fmt.Errorf("creating fake header dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	entries, err := fakeHeadersFS.ReadDir("fakeheaders")
	if err != nil {
		cleanup()
		return "", nil, err
	}
	for _, e := range entries {
		data, err := fakeHeadersFS.ReadFile("fakeheaders/" + e.Name())
		if err != nil {
			cleanup()
			return "", nil, err
		}
		if err := os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("writing fake header: %w", err)
		}
	}
	return dir, cleanup, nil
}

// FakeTypedefIgnores returns the typedef names defined by the bundled
// _fake_typedefs.h. Typedefs with these names in the input are assumed to
// come from the substitute headers and are emitted inside a disabled block
// instead of as live declarations.
func FakeTypedefIgnores() (map[string]bool, error) {
	f, err := fakeHeadersFS.Open("fakeheaders/_fake_typedefs.h")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ignores := make(map[string]bool)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "typedef") {
			continue
		}
		rhs := strings.ReplaceAll(line, ";", "")
		for _, prefix := range []string{"typedef int ", "typedef uint32_t ", "typedef _Bool ", "typedef void* "} {
			rhs = strings.ReplaceAll(rhs, prefix, "")
		}
		if strings.Contains(rhs, "typedef struct") {
			fields := strings.Fields(rhs)
			rhs = fields[len(fields)-1]
		}
		if name := strings.TrimSpace(rhs); name != "" {
			ignores[name] = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ignores, nil
}
