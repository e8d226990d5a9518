// Package toolchain describes the compiler a build was resolved against:
// its family, version and the paths of the C, C++ and Fortran drivers.
package toolchain

import "github.com/mortar-build/mortar/pkgs/version"

// Family identifies a compiler vendor/family.
type Family string

// Known compiler families.
const (
	GCC        Family = "gcc"
	Clang      Family = "clang"
	AppleClang Family = "apple-clang"
	Intel      Family = "intel"
	Cce        Family = "cce" // Cray
	Fujitsu    Family = "fj"
	NVHPC      Family = "nvhpc"
	MSVC       Family = "msvc"
)

// Lang selects one of the compiled languages a toolchain drives.
type Lang int

const (
	C Lang = iota
	Cxx
	Fortran
)

// Compiler is the resolved compiler identity of a build context.
// It is immutable after construction.
type Compiler struct {
	Family  Family
	Version version.V

	CC  string // C compiler path
	CXX string // C++ compiler path
	FC  string // Fortran compiler path, empty when absent
}

// PICFlag returns the position-independent-code flag for the given language,
// or "" when the family has no known flag.
func (c Compiler) PICFlag(lang Lang) string {
	switch c.Family {
	case GCC, Clang, AppleClang, Intel, NVHPC:
		return "-fPIC"
	case Cce:
		if lang == Fortran {
			return "-h PIC"
		}
		return "-fPIC"
	case Fujitsu:
		return "-KPIC"
	}
	return ""
}

// Driver returns the compiler path for the given language.
func (c Compiler) Driver(lang Lang) string {
	switch lang {
	case Cxx:
		return c.CXX
	case Fortran:
		return c.FC
	}
	return c.CC
}

// MPI carries the wrapper compilers of an MPI installation.
type MPI struct {
	CC  string // mpicc
	CXX string // mpicxx
	FC  string // mpifc / mpif90
}
