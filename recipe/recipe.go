// Package recipe defines the declarative build recipe of a package: its
// versions, variants, conditional dependencies and conflicts, patches, and
// the hooks a build orchestrator invokes around configure, install and
// post-install verification.
package recipe

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/mortar-build/mortar/internal/prefix"
	"github.com/mortar-build/mortar/pkgs/version"
	"github.com/mortar-build/mortar/toolchain"
)

// Planning-time error categories. Both abort before any build side effect.
var (
	// ErrIncompatible marks an impossible combination of variants,
	// versions and compiler.
	ErrIncompatible = errors.New("incompatible configuration")

	// ErrMissingPrereq marks a required external tool that is absent for
	// the selected variants.
	ErrMissingPrereq = errors.New("missing prerequisite")
)

// Recipe is the declarative description of how one package is fetched,
// configured, built and verified. All slice/map fields are set once at
// registration and treated as read-only afterwards.
type Recipe struct {
	Name        string
	Homepage    string
	URL         string // default source tarball
	ListURL     string
	Git         string
	Maintainers []string

	Versions     []VersionSpec
	Variants     []Variant
	Dependencies []Dependency
	Conflicts    []Conflict
	Patches      []Patch

	// URLForVersion renders the source URL for a release version.
	// When nil, the VersionSpec's own URL (or Recipe.URL) is used.
	URLForVersion func(v version.V) string

	// FlagHandler adjusts compiler/linker flags per category. Nil means
	// no adjustment. Must be a pure function of its inputs.
	FlagHandler FlagHandler

	// BuildDefs returns build-system-specific definitions (cmake -D args,
	// configure flags) for the resolved context.
	BuildDefs func(ctx *BuildContext) []string

	// SetupBuildEnv returns environment overrides for subordinate build
	// steps. The returned Env is threaded to the process-invocation layer;
	// the ambient process environment is never mutated.
	SetupBuildEnv func(ctx *BuildContext) Env

	// PreConfigure runs before the configure step, typically to verify
	// prerequisites. A returned error aborts the build.
	PreConfigure func(ctx *BuildContext) error

	// PostInstall hooks run after installation, in order.
	PostInstall []func(ctx *BuildContext, pre *prefix.Prefix) error

	// CheckInstall compiles and runs a probe against the installed
	// artifact. Invoked only when the context has tests enabled.
	CheckInstall func(ctx *BuildContext, pre *prefix.Prefix) error

	// SmokeChecks returns the post-install smoke checks for the context.
	SmokeChecks func(ctx *BuildContext) []SmokeCheck

	// Libs maps a library query (e.g. "hl", "fortran") to the library
	// basenames the installed artifact provides for it.
	Libs func(ctx *BuildContext, query []string) ([]string, error)
}

// SmokeCheck is one post-install command invocation with an expected output.
// Checks are independent: a missing executable skips the check, a failure
// never aborts sibling checks.
type SmokeCheck struct {
	Name    string
	Exe     string   // executable basename, looked up under the prefix
	Args    []string // literal arguments
	Expect  string   // substring the output must contain; "" means run only
	WorkDir string
}

// VersionSpec declares one fetchable version of a package: a release with
// an optional checksum, or a branch ref. Immutable once declared.
type VersionSpec struct {
	Version version.V
	SHA256  string // integrity checksum for release tarballs
	Branch  string // VCS branch name, for development versions
	URL     string // explicit source URL overriding the recipe template
}

// SourceURL returns the source locator for the given version.
func (r *Recipe) SourceURL(v version.V) string {
	for _, vs := range r.Versions {
		if vs.Version == v {
			if vs.Branch != "" {
				return r.Git
			}
			if vs.URL != "" {
				return vs.URL
			}
			break
		}
	}
	if r.URLForVersion != nil {
		return r.URLForVersion(v)
	}
	return r.URL
}

// ResolveOptions carries the user's selection for Resolve.
type ResolveOptions struct {
	Variants map[string]string // variant name -> value ("on"/"off" or enum)
	Compiler toolchain.Compiler
	MPI      *toolchain.MPI
	Platform string // defaults to runtime.GOOS
	RunTests bool

	// DepPrefixes maps dependency package names to their installation
	// prefixes, as recorded by the external resolver.
	DepPrefixes map[string]prefix.Prefix
}

// Resolve combines the recipe with a version and variant selection into a
// read-only BuildContext. It validates the selection against the declared
// variants and evaluates every conflict; any violation is reported before
// a build could start.
func (r *Recipe) Resolve(v version.V, opts ResolveOptions) (*BuildContext, error) {
	if v == "" {
		return nil, fmt.Errorf("%s: no version requested", r.Name)
	}
	if !r.declaresVersion(v) && r.URLForVersion == nil && r.URL == "" {
		return nil, fmt.Errorf("%s@%s: %w: version is not declared and the recipe has no URL template", r.Name, v, ErrIncompatible)
	}

	values, err := resolveVariants(r.Name, r.Variants, opts.Variants)
	if err != nil {
		return nil, err
	}

	platform := opts.Platform
	if platform == "" {
		platform = runtime.GOOS
	}

	ctx := &BuildContext{
		Recipe:   r,
		Version:  v,
		variants: values,
		Compiler: opts.Compiler,
		MPI:      opts.MPI,
		Platform: platform,
		RunTests: opts.RunTests,
		deps:     opts.DepPrefixes,
	}

	if err := r.checkConflicts(ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

func (r *Recipe) declaresVersion(v version.V) bool {
	for _, vs := range r.Versions {
		if vs.Version == v {
			return true
		}
	}
	return false
}

// checkConflicts evaluates every declared conflict against the context and
// joins all violations into a single planning error.
func (r *Recipe) checkConflicts(ctx *BuildContext) error {
	var errs []error
	for _, c := range r.Conflicts {
		if c.If.Matches(ctx) && c.When.Matches(ctx) {
			msg := c.Msg
			if msg == "" {
				msg = "conflicting configuration"
			}
			errs = append(errs, fmt.Errorf("%s@%s: %w: %s", r.Name, ctx.Version, ErrIncompatible, msg))
		}
	}
	return errors.Join(errs...)
}

// validate checks the recipe declaration itself. Called by Register.
func (r *Recipe) validate() error {
	if r.Name == "" {
		return errors.New("recipe has no name")
	}
	seen := make(map[string]bool, len(r.Variants))
	for _, vr := range r.Variants {
		if seen[vr.Name] {
			return fmt.Errorf("%s: duplicate variant %q", r.Name, vr.Name)
		}
		seen[vr.Name] = true
		if err := vr.validate(); err != nil {
			return fmt.Errorf("%s: %w", r.Name, err)
		}
	}
	for _, p := range r.Patches {
		if p.URL != "" && p.SHA256 == "" {
			return fmt.Errorf("%s: remote patch %s has no sha256", r.Name, p.URL)
		}
		if p.URL == "" && p.File == "" {
			return fmt.Errorf("%s: patch has neither file nor url", r.Name)
		}
	}
	vseen := make(map[version.V]bool, len(r.Versions))
	for _, vs := range r.Versions {
		if vseen[vs.Version] {
			return fmt.Errorf("%s: duplicate version %s", r.Name, vs.Version)
		}
		vseen[vs.Version] = true
	}
	return nil
}

// ParseSpec splits a "name@version" argument. The version part may be empty.
func ParseSpec(arg string) (name string, v version.V) {
	if i := strings.LastIndexByte(arg, '@'); i >= 0 {
		return arg[:i], version.V(arg[i+1:])
	}
	return arg, ""
}
