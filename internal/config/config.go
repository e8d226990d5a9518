// Package config loads the tool configuration (mortar.toml): the compiler
// identity a build context resolves against, the optional MPI wrappers and
// a few global switches.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mortar-build/mortar/pkgs/version"
	"github.com/mortar-build/mortar/toolchain"
)

// Config is the decoded mortar.toml.
type Config struct {
	Platform string `toml:"platform"`
	RunTests bool   `toml:"run_tests"`

	Compiler CompilerConfig `toml:"compiler"`
	MPI      *MPIConfig     `toml:"mpi"`
}

// CompilerConfig selects the compiler for build contexts.
type CompilerConfig struct {
	Family  string `toml:"family"`
	Version string `toml:"version"`
	CC      string `toml:"cc"`
	CXX     string `toml:"cxx"`
	FC      string `toml:"fc"`
}

// MPIConfig selects the MPI wrapper compilers.
type MPIConfig struct {
	CC  string `toml:"cc"`
	CXX string `toml:"cxx"`
	FC  string `toml:"fc"`
}

// Default is the configuration used when no mortar.toml exists.
func Default() Config {
	return Config{
		Compiler: CompilerConfig{Family: string(toolchain.GCC), CC: "cc", CXX: "c++", FC: "gfortran"},
	}
}

// Load reads the configuration from path. A missing file yields Default.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Compiler.CC == "" {
		return Config{}, fmt.Errorf("%s: [compiler].cc must be set", path)
	}
	return cfg, nil
}

// Toolchain converts the compiler block into a toolchain.Compiler.
func (c Config) Toolchain() toolchain.Compiler {
	return toolchain.Compiler{
		Family:  toolchain.Family(c.Compiler.Family),
		Version: version.V(c.Compiler.Version),
		CC:      c.Compiler.CC,
		CXX:     c.Compiler.CXX,
		FC:      c.Compiler.FC,
	}
}

// MPIWrappers converts the mpi block, or nil when absent.
func (c Config) MPIWrappers() *toolchain.MPI {
	if c.MPI == nil {
		return nil
	}
	return &toolchain.MPI{CC: c.MPI.CC, CXX: c.MPI.CXX, FC: c.MPI.FC}
}
