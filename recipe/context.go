package recipe

import (
	"sort"

	"github.com/mortar-build/mortar/internal/prefix"
	"github.com/mortar-build/mortar/pkgs/version"
	"github.com/mortar-build/mortar/toolchain"
)

// BuildContext is the resolved combination of version, variant values,
// compiler identity and platform for one build invocation. It is created by
// Recipe.Resolve and never mutated afterwards; every hook receives it
// read-only.
type BuildContext struct {
	Recipe   *Recipe
	Version  version.V
	Compiler toolchain.Compiler
	MPI      *toolchain.MPI // nil unless an MPI installation is in scope
	Platform string         // "linux", "darwin", ...
	RunTests bool

	variants map[string]string
	deps     map[string]prefix.Prefix
}

// DepPrefix returns the installation prefix recorded for a dependency.
func (ctx *BuildContext) DepPrefix(name string) (prefix.Prefix, bool) {
	p, ok := ctx.deps[name]
	return p, ok
}

// Variant returns the concrete value resolved for the named variant.
// Exactly one value exists per declared variant.
func (ctx *BuildContext) Variant(name string) string {
	return ctx.variants[name]
}

// Enabled reports whether a boolean variant resolved to "on".
func (ctx *BuildContext) Enabled(name string) bool {
	return ctx.variants[name] == On
}

// VariantNames returns the declared variant names in sorted order.
func (ctx *BuildContext) VariantNames() []string {
	names := make([]string, 0, len(ctx.variants))
	for name := range ctx.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Satisfies reports whether the context's version falls in any of the
// given ranges.
func (ctx *BuildContext) Satisfies(ranges ...version.Range) bool {
	return version.ContainsAny(ranges, ctx.Version)
}

// CompilerFor returns the compiler driver for lang, preferring the MPI
// wrapper when the context has one and the mpi variant is enabled.
func (ctx *BuildContext) CompilerFor(lang toolchain.Lang) string {
	if ctx.MPI != nil && ctx.Enabled("mpi") {
		switch lang {
		case toolchain.Cxx:
			return ctx.MPI.CXX
		case toolchain.Fortran:
			return ctx.MPI.FC
		default:
			return ctx.MPI.CC
		}
	}
	return ctx.Compiler.Driver(lang)
}
