package hdf5

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mortar-build/mortar/internal/prefix"
	"github.com/mortar-build/mortar/pkgs/version"
	"github.com/mortar-build/mortar/recipe"
)

// ensureParallelWrappers creates the parallel compiler wrapper names that
// the CMake installation does not produce on its own.
//
// The Autotools installation produces a C wrapper named h5cc (MPI off) or
// h5pcc (MPI on); the CMake installation only produces h5cc, and only from
// versions 1.8.21, 1.10.2 and 1.12.0 on. Make h5pcc available when MPI is
// enabled, for exactly the versions that generate h5cc. The Fortran
// wrapper h5fc appears from 1.8.22, 1.10.6 and 1.12.0 on and gets the
// same treatment.
func ensureParallelWrappers(ctx *recipe.BuildContext, pre *prefix.Prefix) error {
	h5pcc := ctx.Satisfies(
		version.Between("1.8.21", "1.8.22"),
		version.Between("1.10.2", "1.10.7"),
		version.Only("1.12.0"),
	) && ctx.Enabled("mpi")
	if h5pcc {
		// No fallback here: fix the condition above instead.
		if err := os.Symlink("h5cc", filepath.Join(pre.Bin(), "h5pcc")); err != nil {
			return err
		}
	}

	h5pfc := ctx.Satisfies(
		version.Between("1.8.22", "1.8"),
		version.Between("1.10.6", "1.10"),
		version.Between("1.12.0", "1.12"),
		version.AtLeast("develop"),
	) && ctx.Enabled("fortran") && ctx.Enabled("mpi")
	if h5pfc {
		if err := os.Symlink("h5fc", filepath.Join(pre.Bin(), "h5pfc")); err != nil {
			return err
		}
	}
	return nil
}

// versionedRequires matches a versioned hdf5 package reference on a
// pkg-config Requires line; the version suffix is dropped on replacement.
var versionedRequires = regexp.MustCompile(`(Requires(?:\.private)?:.*)(hdf5[^\s,]*)(?:-[^\s,]*)(.*)`)

// fixPackageConfig repairs the pkg-config files, which the compiler
// wrappers also consume. Depending on the release the files are named
// <name>-<version>.pc but reference <name> packages, or vice versa; some
// Linux distributions additionally install a system hdf5.pc we want to
// override. Rewrite every versioned reference to the plain package name
// and symlink each <name>-<version>.pc as <name>.pc.
func fixPackageConfig(ctx *recipe.BuildContext, pre *prefix.Prefix) error {
	pcDir := pre.PkgConfig()
	if pcDir == "" {
		return nil
	}
	pcFiles, err := filepath.Glob(filepath.Join(pcDir, "hdf5*.pc"))
	if err != nil || len(pcFiles) == 0 {
		return err
	}

	for _, f := range pcFiles {
		data, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		fixed := versionedRequires.ReplaceAll(data, []byte("${1}${2}${3}"))
		if string(fixed) != string(data) {
			if err := os.WriteFile(f, fixed, 0o644); err != nil {
				return err
			}
		}
	}

	for _, f := range pcFiles {
		src := filepath.Base(f)
		sep := strings.IndexByte(src, '-')
		if sep < 0 {
			continue
		}
		tgt := filepath.Join(pcDir, src[:sep]+".pc")
		if _, err := os.Lstat(tgt); err == nil {
			continue
		}
		if err := os.Symlink(src, tgt); err != nil {
			return err
		}
	}
	return nil
}
