// c2chapel generates Chapel extern bindings for a C99 header.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gobwas/glob"
	"github.com/urfave/cli/v2"

	"github.com/insertinterestingnamehere/c2chapel/generator"
	"github.com/insertinterestingnamehere/c2chapel/parser"
)

func main() {
	app := &cli.App{
		Name:      "c2chapel",
		Usage:     "Generate Chapel extern bindings for a C99 header",
		ArgsUsage: "file",
		Version:   generator.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-typedefs",
				Usage: "do not generate extern types for C typedefs",
			},
			&cli.BoolFlag{
				Name:  "no-comments",
				Usage: "instruct c2chapel to not generate comments",
			},
			&cli.BoolFlag{
				Name:  "no-fake-headers",
				Usage: "do not use fake headers included with c2chapel",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debugging output",
			},
			&cli.BoolFlag{
				Name:  "gnu-extensions",
				Usage: "allow GNU extensions in C99 files",
			},
			&cli.StringFlag{
				Name:  "cpp-flags",
				Usage: "extra flags forwarded to the C preprocessor (one shell-quoted string)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write generated Chapel to `FILE` instead of stdout",
			},
			&cli.StringSliceFlag{
				Name:  "skip",
				Usage: "skip declarations whose name matches the glob `PATTERN` (repeatable)",
			},
			&cli.StringFlag{
				Name:  "type-map",
				Usage: "ini `FILE` with a [types] section of extra C-to-Chapel type mappings",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "c2chapel: "+err.Error())
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one C file, got %d arguments", c.NArg())
	}
	fname := c.Args().First()

	raw, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	defines, err := parser.ScanDefines(strings.NewReader(string(raw)))
	if err != nil {
		return fmt.Errorf("scanning #defines: %w", err)
	}

	ppOpts := parser.PreprocessOptions{
		ExtraFlags:    c.String("cpp-flags"),
		GNUExtensions: c.Bool("gnu-extensions"),
	}
	ignores := map[string]bool{}
	usedFakes := false
	if !c.Bool("no-fake-headers") {
		dir, cleanup, err := generator.MaterializeFakeHeaders()
		if err != nil {
			return err
		}
		defer cleanup()
		ppOpts.IncludeDirs = []string{dir}
		usedFakes = true

		ignores, err = generator.FakeTypedefIgnores()
		if err != nil {
			return err
		}
	}

	expanded, err := parser.Preprocess(context.Background(), fname, ppOpts)
	if err != nil {
		return err
	}

	decls, err := parser.Parse(expanded)
	if err != nil {
		return fmt.Errorf("unable to parse file: %w", err)
	}

	var skips []glob.Glob
	for _, pat := range c.StringSlice("skip") {
		gl, err := glob.Compile(pat)
		if err != nil {
			return fmt.Errorf("bad skip pattern %q: %w", pat, err)
		}
		skips = append(skips, gl)
	}

	var overrides map[string]string
	if path := c.String("type-map"); path != "" {
		overrides, err = generator.LoadTypeMap(path)
		if err != nil {
			return err
		}
	}

	out := os.Stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	gen := generator.New(out, generator.Options{
		HeaderPath:      fname,
		NoComments:      c.Bool("no-comments"),
		NoTypedefs:      c.Bool("no-typedefs"),
		Debug:           c.Bool("debug"),
		UsedFakeHeaders: usedFakes,
		Ignores:         ignores,
		TypeOverrides:   overrides,
		SkipPatterns:    skips,
	})
	gen.Run(decls, defines)
	return nil
}
