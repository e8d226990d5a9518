package recipe

import "slices"

// FlagCategory selects which flag list a FlagHandler adjusts.
type FlagCategory int

const (
	CFlags   FlagCategory = iota // C compile flags
	CxxFlags                     // C++ compile flags
	FFlags                       // Fortran compile flags
	LDLibs                       // extra link libraries
)

// String returns the conventional environment-variable style name.
func (c FlagCategory) String() string {
	switch c {
	case CFlags:
		return "cflags"
	case CxxFlags:
		return "cxxflags"
	case FFlags:
		return "fflags"
	case LDLibs:
		return "ldlibs"
	}
	return "unknown"
}

// FlagAdjustment is the result of a flag handler: the (possibly augmented)
// flag list to pass on the command line, plus definitions routed through
// the build system instead.
type FlagAdjustment struct {
	Flags      []string // command-line flags, always a fresh slice
	BuildFlags []string // build-system-specific injected flags
}

// FlagHandler adjusts the flags of one category for a resolved context.
// Handlers must be pure: identical inputs yield identical, order-stable
// output, and the input slice is never mutated.
type FlagHandler func(cat FlagCategory, flags []string, ctx *BuildContext) FlagAdjustment

// AdjustFlags applies the recipe's flag handler, if any. The input slice is
// cloned before the handler sees it, so handlers cannot alias the caller's
// memory even by accident.
func (ctx *BuildContext) AdjustFlags(cat FlagCategory, flags []string) FlagAdjustment {
	cloned := slices.Clone(flags)
	if ctx.Recipe == nil || ctx.Recipe.FlagHandler == nil {
		return FlagAdjustment{Flags: cloned}
	}
	return ctx.Recipe.FlagHandler(cat, cloned, ctx)
}
