package hdf5

import (
	"github.com/qiniu/x/log"

	"github.com/mortar-build/mortar/pkgs/buildsys/cmake"
	"github.com/mortar-build/mortar/pkgs/version"
	"github.com/mortar-build/mortar/recipe"
	"github.com/mortar-build/mortar/toolchain"
)

// picThreshold: more recent versions set CMAKE_POSITION_INDEPENDENT_CODE
// and build with PIC flags on their own.
var picThreshold = version.AtMost("1.8.12")

// flagHandler adjusts compiler/linker flags for the resolved context.
// Injected flags are routed through the build system (BuildFlags) rather
// than the raw command line, matching how the CMake build consumes them.
func flagHandler(cat recipe.FlagCategory, flags []string, ctx *recipe.BuildContext) recipe.FlagAdjustment {
	adj := recipe.FlagAdjustment{Flags: flags}

	switch cat {
	case recipe.CFlags:
		switch ctx.Compiler.Family {
		case toolchain.GCC, toolchain.Clang, toolchain.AppleClang:
			// Quiet warnings/errors about implicit declaration of
			// functions in C99. This flag errors out under nvhpc.
			adj.BuildFlags = append(adj.BuildFlags, "-Wno-implicit-function-declaration")
		}
		if ctx.Satisfies(picThreshold) && !ctx.Enabled("shared") {
			adj.BuildFlags = append(adj.BuildFlags, ctx.Compiler.PICFlag(toolchain.C))
		}

	case recipe.CxxFlags:
		if ctx.Satisfies(picThreshold) && ctx.Enabled("cxx") && !ctx.Enabled("shared") {
			adj.BuildFlags = append(adj.BuildFlags, ctx.Compiler.PICFlag(toolchain.Cxx))
		}

	case recipe.FFlags:
		if ctx.Compiler.Family == toolchain.Cce && ctx.Enabled("fortran") {
			// The Cray compiler generates module files with uppercase
			// names by default, which the CMake scripts cannot handle.
			// Force lowercase module file names.
			adj.BuildFlags = append(adj.BuildFlags, "-ef")
		}
		if ctx.Satisfies(picThreshold) && ctx.Enabled("fortran") && !ctx.Enabled("shared") {
			adj.BuildFlags = append(adj.BuildFlags, ctx.Compiler.PICFlag(toolchain.Fortran))
		}

	case recipe.LDLibs:
		if ctx.Enabled("fortran") && ctx.Compiler.Family == toolchain.Fujitsu {
			adj.BuildFlags = append(adj.BuildFlags,
				"-lfj90i", "-lfj90f", "-lfjsrcinfo", "-lelf")
		}
	}

	return adj
}

// cmakeArgs renders the configure definitions for the resolved context.
func cmakeArgs(ctx *recipe.BuildContext) []string {
	if ctx.Satisfies(version.AtMost("1.8.15")) && ctx.Enabled("shared") {
		log.Warnf("hdf5@:1.8.15 shared=on does not produce static libraries")
	}

	d := cmake.New()
	// Always allowed: it does not enable any feature on its own, it only
	// permits certain combinations of other arguments.
	d.SetBool("ALLOW_UNSUPPORTED", true)
	// Speed up the build by skipping the examples.
	d.SetBool("HDF5_BUILD_EXAMPLES", false)
	// Version 1.8.22 fails to build the tools when shared libraries are
	// enabled but the tests are disabled.
	d.SetBool("BUILD_TESTING", ctx.RunTests ||
		(ctx.Satisfies(version.Only("1.8.22")) && ctx.Enabled("shared") && ctx.Enabled("tools")))
	d.SetBool("HDF5_ENABLE_Z_LIB_SUPPORT", true)
	d.FromVariant("HDF5_ENABLE_SZIP_SUPPORT", ctx, "szip")
	d.FromVariant("HDF5_ENABLE_SZIP_ENCODING", ctx, "szip")
	d.FromVariant("BUILD_SHARED_LIBS", ctx, "shared")
	d.SetBool("ONLY_SHARED_LIBS", false)
	d.FromVariant("HDF5_ENABLE_PARALLEL", ctx, "mpi")
	d.FromVariant("HDF5_ENABLE_THREADSAFE", ctx, "threadsafe")
	d.FromVariant("HDF5_BUILD_HL_LIB", ctx, "hl")
	d.FromVariant("HDF5_BUILD_CPP_LIB", ctx, "cxx")
	d.FromVariant("HDF5_BUILD_FORTRAN", ctx, "fortran")
	d.FromVariant("HDF5_BUILD_JAVA", ctx, "java")
	d.FromVariant("HDF5_BUILD_TOOLS", ctx, "tools")

	if api := ctx.Variant("api"); api != "default" {
		d.Set("DEFAULT_API_VERSION", api)
	}

	if ctx.MPI != nil && ctx.Enabled("mpi") {
		d.Set("CMAKE_C_COMPILER", ctx.MPI.CC)
		if ctx.Enabled("cxx") {
			d.Set("CMAKE_CXX_COMPILER", ctx.MPI.CXX)
		}
		if ctx.Enabled("fortran") {
			d.Set("CMAKE_Fortran_COMPILER", ctx.MPI.FC)
		}
	}

	// Workaround for the broken default install destination of the CMake
	// package files in these two releases.
	if ctx.Satisfies(version.Only("1.10.8"), version.Only("1.13.0")) {
		d.Set("HDF5_INSTALL_CMAKE_DIR", "share/cmake/hdf5")
	}

	return d.Args()
}
