package hdf5

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mortar-build/mortar/recipe"
)

// query2libraries translates a sorted library query (subset of
// hl/cxx/fortran/java) into the library basenames that implement it, in
// link order.
//
// When installed with Autotools the High-level Fortran interface is named
// libhdf5hl_fortran with a libhdf5_hl_fortran symlink from 1.8.22/1.10.5/
// 1.12.0 on; the CMake installation names the file libhdf5_hl_fortran
// directly. We do not preserve backward compatibility with Autotools
// installations by creating symlinks; packages that hardcode the old name
// should simply be patched.
var query2libraries = map[string][]string{
	"": {"libhdf5"},
	"cxx,fortran,hl,java": {
		"libhdf5_hl_fortran",
		"libhdf5_hl_f90cstub",
		"libhdf5_hl_cpp",
		"libhdf5_hl",
		"libhdf5_fortran",
		"libhdf5_f90cstub",
		"libhdf5_java",
		"libhdf5",
	},
	"cxx,hl": {
		"libhdf5_hl_cpp",
		"libhdf5_hl",
		"libhdf5",
	},
	"fortran,hl": {
		"libhdf5_hl_fortran",
		"libhdf5_hl_f90cstub",
		"libhdf5_hl",
		"libhdf5_fortran",
		"libhdf5_f90cstub",
		"libhdf5",
	},
	"hl": {
		"libhdf5_hl",
		"libhdf5",
	},
	"cxx,fortran": {
		"libhdf5_fortran",
		"libhdf5_f90cstub",
		"libhdf5_cpp",
		"libhdf5",
	},
	"cxx": {
		"libhdf5_cpp",
		"libhdf5",
	},
	"fortran": {
		"libhdf5_fortran",
		"libhdf5_f90cstub",
		"libhdf5",
	},
	"java": {
		"libhdf5_java",
		"libhdf5",
	},
}

// libsFor returns the library basenames matching a query such as
// ["hl", "fortran"]. An empty query selects the core library.
func libsFor(ctx *recipe.BuildContext, query []string) ([]string, error) {
	sorted := make([]string, len(query))
	copy(sorted, query)
	sort.Strings(sorted)

	key := strings.Join(sorted, ",")
	libs, ok := query2libraries[key]
	if !ok {
		return nil, fmt.Errorf("hdf5: no library mapping for query %v", query)
	}
	return libs, nil
}
