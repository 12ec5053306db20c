package parser

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// PreprocessOptions control the preprocessor invocation.
type PreprocessOptions struct {
	// Command is the compiler driver used for expansion. Defaults to "cc".
	Command string
	// IncludeDirs are extra -I directories (the fake headers live here).
	IncludeDirs []string
	// ExtraFlags is a single shell-quoted string of additional flags
	// forwarded verbatim to the preprocessor.
	ExtraFlags string
	// GNUExtensions enables GNU C when expanding.
	GNUExtensions bool
}

// Preprocess runs the system preprocessor over the header at path and
// returns the expanded text. Linemarkers survive in the output; the lexer
// skips them.
func Preprocess(ctx context.Context, path string, opts PreprocessOptions) (string, error) {
	cmd := opts.Command
	if cmd == "" {
		cmd = "cc"
	}

	args := []string{"-E"}
	if opts.GNUExtensions {
		args = append(args, "-std=gnu99")
	}
	for _, dir := range opts.IncludeDirs {
		args = append(args, "-I", dir)
	}
	if opts.ExtraFlags != "" {
		extra, err := shellquote.Split(opts.ExtraFlags)
		if err != nil {
			return "", fmt.Errorf("splitting preprocessor flags: %w", err)
		}
		args = append(args, extra...)
	}
	args = append(args, path)

	var out, stderr bytes.Buffer
	c := exec.CommandContext(ctx, cmd, args...)
	c.Stdout = &out
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("%s -E failed: %w: %s", cmd, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.String(), nil
}
