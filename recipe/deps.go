package recipe

import "github.com/mortar-build/mortar/pkgs/version"

// DepKind is a bitmask describing when a dependency is needed.
type DepKind uint8

const (
	DepBuild DepKind = 1 << iota // needed to build
	DepLink                      // linked into the artifact
	DepRun                       // needed at run time

	// DepDefault is the kind of an unspecified dependency.
	DepDefault = DepBuild | DepLink
)

// Has reports whether k includes kind.
func (k DepKind) Has(kind DepKind) bool { return k&kind != 0 }

// Dependency declares that the package requires another package, optionally
// constrained to a version range and gated on a condition. Constraints are
// evaluated once during planning and never mutated afterwards.
type Dependency struct {
	Name string
	Spec version.Range // accepted versions of the dependency
	Kind DepKind       // zero means DepDefault
	When Condition
}

// kind returns the effective kind.
func (d Dependency) kind() DepKind {
	if d.Kind == 0 {
		return DepDefault
	}
	return d.Kind
}

// Conflict declares an impossible configuration: if the context matches
// both If (the offending selection) and When (its scope), planning fails
// with Msg.
type Conflict struct {
	If   Condition
	When Condition
	Msg  string
}

// DependenciesFor returns the dependencies applicable to the resolved
// context, preserving declaration order.
func (r *Recipe) DependenciesFor(ctx *BuildContext) []Dependency {
	var deps []Dependency
	for _, d := range r.Dependencies {
		if d.When.Matches(ctx) {
			d.Kind = d.kind()
			deps = append(deps, d)
		}
	}
	return deps
}
