package recipe

import (
	"github.com/mortar-build/mortar/pkgs/version"
	"github.com/mortar-build/mortar/toolchain"
)

// Condition is a typed predicate over a resolved BuildContext. Every set
// field must match; the zero Condition matches every context. Version
// ranges combine as any-of, mirroring comma-separated range lists.
type Condition struct {
	Versions         []version.Range
	Compiler         toolchain.Family
	CompilerVersions version.Range
	Variants         []VariantCond
	Platform         string // required platform, e.g. "darwin"
	NotPlatform      string // excluded platform
}

// VariantCond requires one variant to hold a specific value.
type VariantCond struct {
	Name  string
	Value string
}

// WithOn requires a boolean variant to be enabled.
func WithOn(name string) VariantCond { return VariantCond{Name: name, Value: On} }

// WithOff requires a boolean variant to be disabled.
func WithOff(name string) VariantCond { return VariantCond{Name: name, Value: Off} }

// WithValue requires an enumerated variant to hold value.
func WithValue(name, value string) VariantCond { return VariantCond{Name: name, Value: value} }

// Matches evaluates the condition against a resolved context. Evaluation is
// read-only and monotonic: it depends only on the context, never on other
// conditions.
func (c Condition) Matches(ctx *BuildContext) bool {
	if !version.ContainsAny(c.Versions, ctx.Version) {
		return false
	}
	if c.Compiler != "" {
		if ctx.Compiler.Family != c.Compiler {
			return false
		}
		if !c.CompilerVersions.Contains(ctx.Compiler.Version) {
			return false
		}
	}
	for _, vc := range c.Variants {
		if ctx.Variant(vc.Name) != vc.Value {
			return false
		}
	}
	if c.Platform != "" && ctx.Platform != c.Platform {
		return false
	}
	if c.NotPlatform != "" && ctx.Platform == c.NotPlatform {
		return false
	}
	return true
}
