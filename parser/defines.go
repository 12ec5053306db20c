package parser

import (
	"bufio"
	"io"
	"regexp"
)

// Matches "#define NAME 42" and nothing fancier: no hex or octal, no
// strings, no expressions. The scan runs over the raw header text, before
// preprocessing, so conditional guards are invisible to it.
var definePat = regexp.MustCompile(`^\s*#define\s+([_a-zA-Z0-9]+)\s+[0-9]+$`)

// ScanDefines collects the names of simple integer #define macros from r,
// in order of first appearance. Repeated names are reported once.
func ScanDefines(r io.Reader) ([]string, error) {
	var names []string
	seen := make(map[string]bool)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		m := definePat.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
