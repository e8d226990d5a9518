// Package prefix models an installation prefix: the directory an artifact
// was installed into, and the compile/link metadata derived from it.
package prefix

import (
	"os"
	"path/filepath"
)

// Prefix is the root directory of one installed package.
type Prefix string

// New returns the prefix rooted at dir.
func New(dir string) Prefix { return Prefix(dir) }

// String returns the prefix path.
func (p Prefix) String() string { return string(p) }

// Include returns the header directory.
func (p Prefix) Include() string { return filepath.Join(string(p), "include") }

// Lib returns the library directory.
func (p Prefix) Lib() string { return filepath.Join(string(p), "lib") }

// Bin returns the executable directory.
func (p Prefix) Bin() string { return filepath.Join(string(p), "bin") }

// PkgConfig returns the pkg-config directory, or "" when absent.
func (p Prefix) PkgConfig() string {
	dir := filepath.Join(p.Lib(), "pkgconfig")
	if _, err := os.Stat(dir); err != nil {
		return ""
	}
	return dir
}

// HeaderFlags returns the compile flags exposing the installed headers.
func (p Prefix) HeaderFlags() []string {
	return []string{"-I" + p.Include()}
}

// Executable returns the path of a named executable under bin, or "" when
// it does not exist. Optional components that were disabled at build time
// simply have no executable here.
func (p Prefix) Executable(name string) string {
	path := filepath.Join(p.Bin(), name)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return ""
	}
	return path
}
