// Package generator translates a parsed C declaration tree into Chapel
// extern declarations. Translation is single-threaded and single-shot: one
// walk over the declarations, then a deferred pass over collected typedefs
// so forward references resolve regardless of declaration order.
package generator

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/insertinterestingnamehere/c2chapel/parser"
)

// Version is reported by the CLI and stamped into generated output.
const Version = "0.1.0"

// varargsStr is the Chapel spelling of a C ellipsis parameter.
const varargsStr = "c__varargs ..."

// Options configure one translation run.
type Options struct {
	// HeaderPath is the input header, used for the preamble's require line.
	HeaderPath string
	// NoComments suppresses all generated comments, including skip
	// diagnostics; declaration content is unaffected.
	NoComments bool
	// NoTypedefs disables the deferred typedef pass.
	NoTypedefs bool
	// Debug adds per-node trace comments.
	Debug bool
	// UsedFakeHeaders notes in the preamble that the bundled substitute
	// headers were fed to the preprocessor.
	UsedFakeHeaders bool
	// Ignores are typedef names already covered by the fake headers; they
	// are emitted inside a disabled comment block.
	Ignores map[string]bool
	// TypeOverrides extend or override the primitive registry.
	TypeOverrides map[string]string
	// SkipPatterns drop matching top-level declarations with a diagnostic.
	SkipPatterns []glob.Glob
}

// Generator holds the mutable translation state: the typedef table and the
// set of type names already emitted. Both are owned by the walk and read
// by the deferred typedef pass; a Generator is single-use.
type Generator struct {
	out  io.Writer
	opts Options

	types    map[string]string              // C spelling -> Chapel type
	typedefs map[string]*parser.TypedefDecl // nil marks pruned/emitted names
	found    map[string]bool                // emitted aggregate/alias names
}

// New returns a Generator writing Chapel source to out.
func New(out io.Writer, opts Options) *Generator {
	types := make(map[string]string, len(primitives)+len(opts.TypeOverrides))
	for k, v := range primitives {
		types[k] = v
	}
	for k, v := range opts.TypeOverrides {
		types[k] = v
	}
	if opts.Ignores == nil {
		opts.Ignores = map[string]bool{}
	}
	return &Generator{
		out:      out,
		opts:     opts,
		types:    types,
		typedefs: make(map[string]*parser.TypedefDecl),
		found:    make(map[string]bool),
	}
}

// Run translates decls and the scanned #define names into Chapel.
func (g *Generator) Run(decls []parser.Decl, defines []string) {
	g.preamble()
	g.emitDefines(defines)

	for _, d := range decls {
		if name := d.DeclName(); name != "" && g.skipped(name) {
			g.comment("Skipping '" + name + "' (matches skip pattern)")
			g.blank()
			continue
		}
		if g.opts.Debug {
			g.comment(fmt.Sprintf("[debug]: visiting %T %q", d, d.DeclName()))
		}

		switch d := d.(type) {
		case *parser.AggregateDecl:
			g.visitAggregate(d.Aggregate)
		case *parser.TypedefDecl:
			// First one wins; later redefinitions (and names pruned by a
			// seen aggregate definition) are left alone.
			if _, seen := g.typedefs[d.Name]; !seen {
				g.typedefs[d.Name] = d
			}
		case *parser.FuncDecl:
			g.emitFunction(d)
		case *parser.VarDecl:
			g.emitVar(d)
		case *parser.EnumDecl:
			g.emitEnum(d.Enum)
		}
	}

	if !g.opts.NoTypedefs {
		g.flushTypedefs()
	}
}

func (g *Generator) visitAggregate(agg *parser.Aggregate) {
	g.emitAggregate(agg, "", false)
	// A full definition claims the tag: a later "typedef struct foo foo;"
	// must not produce a duplicate opaque shell. A forward declaration
	// leaves the slot open for an embedded definition later, e.g.
	// "typedef struct foo { int x; } foo;".
	if agg.Defined && agg.Tag != "" {
		g.typedefs[agg.Tag] = nil
	}
}

func (g *Generator) skipped(name string) bool {
	for _, pat := range g.opts.SkipPatterns {
		if pat.Match(name) {
			return true
		}
	}
	return false
}

func (g *Generator) printf(format string, args ...any) {
	fmt.Fprintf(g.out, format, args...)
}

func (g *Generator) println(s string) {
	fmt.Fprintln(g.out, s)
}

func (g *Generator) blank() {
	fmt.Fprintln(g.out)
}

// comment writes s as "// " lines unless comments are disabled.
func (g *Generator) comment(s string) {
	if g.opts.NoComments {
		return
	}
	for _, line := range strings.Split(s, "\n") {
		fmt.Fprintln(g.out, "// "+line)
	}
}

func (g *Generator) preamble() {
	g.comment("Generated with c2chapel version " + Version)
	g.blank()

	if strings.HasSuffix(g.opts.HeaderPath, ".h") {
		g.comment("Header given to c2chapel:")
		g.println("require \"" + filepath.ToSlash(g.opts.HeaderPath) + "\";")
		g.blank()
	}

	if g.opts.UsedFakeHeaders {
		g.comment("Note: Generated with fake std headers")
		g.blank()
	}

	// Needed for C types.
	g.println("use CTypes;")
}

// emitDefines writes one extern const per scanned #define name. The scan
// already deduplicates, so emission here is idempotent per unique name.
func (g *Generator) emitDefines(names []string) {
	if len(names) == 0 {
		return
	}
	g.comment("#define'd integer literals:")
	g.comment("Note: some of these may have been defined with an ifdef")
	for _, name := range names {
		g.println("extern const " + name + " : int;")
	}
	g.blank()
	g.comment("End of #define'd integer literals")
	g.blank()
}

func (g *Generator) emitVar(v *parser.VarDecl) {
	if err := checkDefName(v.Name, "variable"); err != nil {
		g.comment("Unable to generate variable '" + v.Name + "' because its name is a Chapel keyword")
		g.blank()
		return
	}
	ty, err := g.resolveType(v.Type)
	if err != nil {
		g.comment("Unable to generate variable '" + v.Name + "': " + err.Error())
		g.blank()
		return
	}
	g.println("extern var " + v.Name + " : " + ty + ";")
	g.blank()
}

func (g *Generator) emitEnum(e *parser.EnumSpec) {
	if !e.Defined {
		return
	}
	if e.Tag != "" {
		g.comment("Enum: " + e.Tag)
	} else {
		g.comment("Enum: anonymous")
	}
	for _, name := range e.Enumerators {
		g.println("extern const " + name + " :c_int;")
	}
	g.blank()
}
