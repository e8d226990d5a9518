package prefix

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// LibraryList is an ordered set of library files found under a prefix.
type LibraryList struct {
	root  Prefix
	files []string // absolute paths, query order
}

// Files returns the discovered library file paths.
func (l LibraryList) Files() []string { return l.files }

// LinkFlags renders the list as linker arguments: one -L per containing
// directory (first occurrence order) followed by one -l per library.
func (l LibraryList) LinkFlags() []string {
	var flags []string
	seen := make(map[string]bool)
	for _, f := range l.files {
		dir := filepath.Dir(f)
		if !seen[dir] {
			seen[dir] = true
			flags = append(flags, "-L"+dir)
		}
	}
	for _, f := range l.files {
		name := strings.TrimPrefix(baseNoExt(f), "lib")
		flags = append(flags, "-l"+name)
	}
	return flags
}

func baseNoExt(path string) string {
	base := filepath.Base(path)
	// shared libraries may carry a version suffix: libx.so.1.2
	if i := strings.Index(base, ".so"); i >= 0 {
		return base[:i]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// sharedSuffix returns the shared-library suffix for the current platform.
func sharedSuffix() string {
	switch runtime.GOOS {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	}
	return ".so"
}

// FindLibraries locates the named libraries (basenames without extension,
// e.g. "libhdf5") under the prefix, searching lib first and then the whole
// tree. shared selects the shared suffix, otherwise ".a". Every requested
// name must be found; the returned list preserves the query order.
func (p Prefix) FindLibraries(names []string, shared bool) (LibraryList, error) {
	suffix := ".a"
	if shared {
		suffix = sharedSuffix()
	}

	list := LibraryList{root: p}
	for _, name := range names {
		path, err := p.findLibrary(name, suffix)
		if err != nil {
			return LibraryList{}, err
		}
		list.files = append(list.files, path)
	}
	return list, nil
}

func (p Prefix) findLibrary(name, suffix string) (string, error) {
	direct := filepath.Join(p.Lib(), name+suffix)
	if exists(direct) {
		return direct, nil
	}

	// Fall back to a recursive walk; some packages install under lib64 or
	// versioned subdirectories.
	var found string
	filepath.WalkDir(string(p), func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || found != "" {
			return nil
		}
		base := filepath.Base(path)
		if base == name+suffix || strings.HasPrefix(base, name+suffix+".") {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if found == "" {
		return "", fmt.Errorf("failed to locate library %s%s under %s", name, suffix, p)
	}
	return found, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
