// Package autotools renders configure arguments for Autotools-style builds.
// It only generates arguments; running configure belongs to the build engine.
package autotools

import "github.com/mortar-build/mortar/recipe"

// Prefix renders the --prefix argument.
func Prefix(dir string) string { return "--prefix=" + dir }

// EnableDisable renders --enable-<name> or --disable-<name>.
func EnableDisable(name string, enabled bool) string {
	if enabled {
		return "--enable-" + name
	}
	return "--disable-" + name
}

// FromVariant renders --enable/--disable for a boolean variant of the
// resolved context.
func FromVariant(name string, ctx *recipe.BuildContext, variant string) string {
	return EnableDisable(name, ctx.Enabled(variant))
}

// WithWithout renders --with-<name>=<value> or --without-<name>.
func WithWithout(name, value string) string {
	if value == "" {
		return "--without-" + name
	}
	return "--with-" + name + "=" + value
}
