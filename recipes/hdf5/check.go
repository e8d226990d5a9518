package hdf5

import (
	"context"
	"fmt"

	"github.com/mortar-build/mortar/internal/check"
	"github.com/mortar-build/mortar/internal/prefix"
	"github.com/mortar-build/mortar/recipe"
	"github.com/mortar-build/mortar/toolchain"
)

// probeSource calls the installed library's version-reporting entry point
// and prints a formatted version string. The compile-time and run-time
// versions are both printed so a header/library skew is caught.
const probeSource = `#include <hdf5.h>
#include <assert.h>
#include <stdio.h>
int main(int argc, char **argv) {
  unsigned majnum, minnum, relnum;
  herr_t herr = H5get_libversion(&majnum, &minnum, &relnum);
  assert(!herr);
  printf("HDF5 version %d.%d.%d %u.%u.%u\n", H5_VERS_MAJOR, H5_VERS_MINOR,
         H5_VERS_RELEASE, majnum, minnum, relnum);
  return 0;
}
`

// ExpectedProbeOutput returns the output the probe must print for the
// requested version.
func ExpectedProbeOutput(ctx *recipe.BuildContext) string {
	v := ctx.Version.UpTo(3)
	return fmt.Sprintf("%s version %s %s\n", product, v, v)
}

// checkInstall builds and runs a small program against the installed
// library. The compiler is the one the main build used (the MPI wrapper
// when the mpi variant is enabled) and the include/link flags come from
// the installed prefix, not from hardcoded paths.
func checkInstall(ctx *recipe.BuildContext, pre *prefix.Prefix) error {
	libs, err := libsFor(ctx, nil)
	if err != nil {
		return err
	}
	found, err := pre.FindLibraries(libs, ctx.Enabled("shared"))
	if err != nil {
		return fmt.Errorf("hdf5: %w", err)
	}

	probe := &check.Probe{
		Product:      product,
		Source:       probeSource,
		Compiler:     ctx.CompilerFor(toolchain.C),
		CompileFlags: pre.HeaderFlags(),
		LinkFlags:    found.LinkFlags(),
		Expected:     ExpectedProbeOutput(ctx),
	}
	_, err = probe.Run(context.Background())
	return err
}

// smokeChecks returns the post-install version checks of the installed
// tools. Tools that are absent (e.g. tools=off builds) are skipped by the
// runner.
func smokeChecks(ctx *recipe.BuildContext) []recipe.SmokeCheck {
	want := "Version " + ctx.Version.String()

	exes := []string{
		"h5copy", "h5diff", "h5dump", "h5format_convert", "h5ls",
		"h5mkgrp", "h5repack", "h5stat", "h5unjam",
	}
	useShortOpt := map[string]bool{"h52gif": true, "h5repart": true, "h5unjam": true}

	var checks []recipe.SmokeCheck
	for _, exe := range exes {
		option := "--version"
		if useShortOpt[exe] {
			option = "-V"
		}
		checks = append(checks, recipe.SmokeCheck{
			Name:   "version of " + exe,
			Exe:    exe,
			Args:   []string{option},
			Expect: want,
		})
	}
	return checks
}

// ExampleChecks performs copy, dump and diff on an example hdf5 file in
// dataDir. The dump output is only required to mention the dataset name;
// the copy and diff must succeed silently.
func ExampleChecks(dataDir string) []recipe.SmokeCheck {
	const filename = "mortar.h5"
	return []recipe.SmokeCheck{
		{
			Name:    "h5dump produces expected output",
			Exe:     "h5dump",
			Args:    []string{filename},
			Expect:  "HDF5",
			WorkDir: dataDir,
		},
		{
			Name:    "h5copy runs",
			Exe:     "h5copy",
			Args:    []string{"-i", filename, "-s", "Mortar", "-o", "test.h5", "-d", "Mortar"},
			WorkDir: dataDir,
		},
		{
			Name:    "h5diff shows no differences between orig and copy",
			Exe:     "h5diff",
			Args:    []string{filename, "test.h5"},
			WorkDir: dataDir,
		},
	}
}
