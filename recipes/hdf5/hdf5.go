// Package hdf5 is the build recipe for the HDF5 data model and I/O library.
package hdf5

import (
	"fmt"

	"github.com/mortar-build/mortar/pkgs/version"
	"github.com/mortar-build/mortar/recipe"
)

const product = "HDF5"

func init() {
	recipe.Register(New())
}

// New returns the hdf5 recipe.
func New() *recipe.Recipe {
	r := &recipe.Recipe{
		Name:     "hdf5",
		Homepage: "https://portal.hdfgroup.org",
		URL:      "https://support.hdfgroup.org/ftp/HDF5/releases/hdf5-1.10/hdf5-1.10.7/src/hdf5-1.10.7.tar.gz",
		ListURL:  "https://support.hdfgroup.org/ftp/HDF5/releases",
		Git:      "https://github.com/HDFGroup/hdf5.git",
		Maintainers: []string{
			"lrknox", "brtnfld", "byrnHDF", "ChristopherHogan", "epourmal",
			"gheber", "hyoklee", "lkurz", "soumagne",
		},

		// The develop branch is published under its own version name so it
		// can be rebuilt or patched without affecting release versions.
		Versions: []recipe.VersionSpec{
			{Version: "1.13", Branch: "develop"},
			{Version: "1.12", Branch: "hdf5_1_12"},
			{Version: "1.10", Branch: "hdf5_1_10"},
			{Version: "1.8", Branch: "hdf5_1_8"},
		},

		Variants: []recipe.Variant{
			recipe.Bool("shared", true, "Builds a shared version of the library"),
			recipe.Bool("hl", false, "Enable the high-level library"),
			recipe.Bool("cxx", false, "Enable C++ support"),
			recipe.Bool("fortran", false, "Enable Fortran support"),
			recipe.Bool("java", false, "Enable Java support"),
			recipe.Bool("threadsafe", false, "Enable thread-safe capabilities"),
			recipe.Bool("tools", true, "Enable building tools"),
			recipe.Bool("mpi", true, "Enable MPI support"),
			recipe.Bool("szip", false, "Enable szip support"),
			recipe.Enum("api", "default", "Choose api compatibility for earlier version",
				"default", "v114", "v112", "v110", "v18", "v16"),
		},

		Dependencies: []recipe.Dependency{
			{Name: "cmake", Spec: version.AtLeast("3.12"), Kind: recipe.DepBuild},
			{Name: "mpi", When: recipe.Condition{Variants: []recipe.VariantCond{recipe.WithOn("mpi")}}},
			{Name: "java", Kind: recipe.DepBuild | recipe.DepRun,
				When: recipe.Condition{Variants: []recipe.VariantCond{recipe.WithOn("java")}}},
			// numactl does not currently build on darwin
			{Name: "numactl", When: recipe.Condition{
				Variants:    []recipe.VariantCond{recipe.WithOn("mpi"), recipe.WithOn("fortran")},
				NotPlatform: "darwin",
			}},
			{Name: "szip", When: recipe.Condition{Variants: []recipe.VariantCond{recipe.WithOn("szip")}}},
			{Name: "zlib", Spec: version.AtLeast("1.1.2")},
			// The compiler wrappers (h5cc, h5fc, etc.) run 'pkg-config'.
			{Name: "pkgconfig", Kind: recipe.DepRun},
		},

		Conflicts: []recipe.Conflict{
			{If: recipe.Condition{Variants: []recipe.VariantCond{recipe.WithValue("api", "v114")}},
				When: recipe.Condition{Versions: []version.Range{version.Between("1.6", "1.12")}},
				Msg:  "v114 is not compatible with this release"},
			{If: recipe.Condition{Variants: []recipe.VariantCond{recipe.WithValue("api", "v112")}},
				When: recipe.Condition{Versions: []version.Range{version.Between("1.6", "1.10")}},
				Msg:  "v112 is not compatible with this release"},
			{If: recipe.Condition{Variants: []recipe.VariantCond{recipe.WithValue("api", "v110")}},
				When: recipe.Condition{Versions: []version.Range{version.Between("1.6", "1.8")}},
				Msg:  "v110 is not compatible with this release"},
			{If: recipe.Condition{Variants: []recipe.VariantCond{recipe.WithValue("api", "v18")}},
				When: recipe.Condition{Versions: []version.Range{version.Between("1.6.0", "1.6")}},
				Msg:  "v18 is not compatible with this release"},
			// The Java wrappers and associated libhdf5_java library
			// were first available in 1.10
			{If: recipe.Condition{Variants: []recipe.VariantCond{recipe.WithOn("java")}},
				When: recipe.Condition{Versions: []version.Range{version.AtMost("1.9")}},
				Msg:  "the Java wrappers require version 1.10 or later"},
			// The Java wrappers cannot be built without shared libs.
			{If: recipe.Condition{Variants: []recipe.VariantCond{recipe.WithOn("java"), recipe.WithOff("shared")}},
				Msg: "the Java wrappers require shared libraries"},
		},

		Patches: []recipe.Patch{
			// Known build failures with intel@18 Fortran.
			{File: "h5f90global-mult-obj-same-equivalence-same-common-block.patch",
				When: recipe.Condition{
					Versions:         []version.Range{version.Only("1.10.1")},
					Compiler:         "intel",
					CompilerVersions: version.Only("18"),
				}},
			// Turn line comments into block comments to conform with pre-C99
			// language standards; later releases don't need it.
			{File: "pre-c99-comments.patch",
				When: recipe.Condition{Versions: []version.Range{version.Only("1.8.10")}}},
			// Build errors with GCC 8.
			{URL: "https://salsa.debian.org/debian-gis-team/hdf5/raw/bf94804af5f80f662cad80a5527535b3c6537df6/debian/patches/gcc-8.patch",
				SHA256: "57cee5ff1992b4098eda079815c36fc2da9b10e00a9056df054f2384c4fc7523",
				When: recipe.Condition{
					Versions:         []version.Range{version.Only("1.10.2")},
					Compiler:         "gcc",
					CompilerVersions: version.AtLeast("8"),
				}},
			// Disable the MPI C++ interface when C++ is disabled, otherwise
			// downstream libraries fail to link.
			{File: "h5public-skip-mpicxx.patch",
				SHA256: "b61e2f058964ad85be6ee5ecea10080bf79e73f83ff88d1fa4b602d00209da9c",
				When: recipe.Condition{
					Versions: []version.Range{
						version.Between("1.8.10", "1.8.21"),
						version.Between("1.10.0", "1.10.5"),
					},
					Variants: []recipe.VariantCond{recipe.WithOn("mpi"), recipe.WithOff("cxx")},
				}},
			// Fixes the BOZ literal constant error when compiled with GCC 10.
			{File: "hdf5_1.8_gcc10.patch",
				SHA256: "0e20187cda3980a4fdff410da92358b63de7ebef2df1d7a425371af78e50f666",
				When:   recipe.Condition{Versions: []version.Range{version.AtMost("1.8.21")}}},
		},

		URLForVersion: urlForVersion,
		FlagHandler:   flagHandler,
		SetupBuildEnv: setupBuildEnv,
		PreConfigure:  fortranCheck,
		Libs:          libsFor,
	}
	r.BuildDefs = func(ctx *recipe.BuildContext) []string { return cmakeArgs(ctx) }
	r.PostInstall = append(r.PostInstall, ensureParallelWrappers, fixPackageConfig)
	r.CheckInstall = checkInstall
	r.SmokeChecks = smokeChecks
	return r
}

func urlForVersion(v version.V) string {
	return fmt.Sprintf(
		"https://support.hdfgroup.org/ftp/HDF5/releases/hdf5-%s/hdf5-%s/src/hdf5-%s.tar.gz",
		v.UpTo(2), v, v)
}

// setupBuildEnv points the build at the szip installation for the releases
// whose build system needs the explicit hint.
func setupBuildEnv(ctx *recipe.BuildContext) recipe.Env {
	env := recipe.NewEnv()
	inRange := ctx.Satisfies(version.AtMost("1.8.21"), version.Between("1.10.0", "1.10.5"))
	if inRange && ctx.Enabled("szip") {
		if szip, ok := ctx.DepPrefix("szip"); ok {
			env = env.Set("SZIP_INSTALL", szip.String())
		}
	}
	return env
}

// fortranCheck fails before configure when the fortran variant is selected
// but the toolchain has no Fortran compiler.
func fortranCheck(ctx *recipe.BuildContext) error {
	if ctx.Enabled("fortran") && ctx.Compiler.FC == "" {
		return fmt.Errorf("hdf5: %w: cannot build a Fortran variant without a Fortran compiler",
			recipe.ErrMissingPrereq)
	}
	return nil
}
