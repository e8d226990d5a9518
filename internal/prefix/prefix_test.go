package prefix

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
)

func install(t *testing.T, files ...string) Prefix {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return Prefix(root)
}

func TestExecutable(t *testing.T) {
	p := install(t, "bin/h5dump")
	if got := p.Executable("h5dump"); got != filepath.Join(string(p), "bin", "h5dump") {
		t.Errorf("Executable = %q", got)
	}
	if got := p.Executable("h5fc"); got != "" {
		t.Errorf("Executable of absent tool = %q, want empty", got)
	}
}

func TestPkgConfig(t *testing.T) {
	p := install(t, "lib/pkgconfig/hdf5.pc")
	if got := p.PkgConfig(); got != filepath.Join(p.Lib(), "pkgconfig") {
		t.Errorf("PkgConfig = %q", got)
	}

	bare := Prefix(t.TempDir())
	if got := bare.PkgConfig(); got != "" {
		t.Errorf("PkgConfig without the directory = %q, want empty", got)
	}
}

func TestHeaderFlags(t *testing.T) {
	p := Prefix("/opt/hdf5")
	want := []string{"-I" + filepath.Join("/opt/hdf5", "include")}
	if got := p.HeaderFlags(); !slices.Equal(got, want) {
		t.Errorf("HeaderFlags = %v, want %v", got, want)
	}
}

func TestFindLibrariesStatic(t *testing.T) {
	p := install(t, "lib/libhdf5.a", "lib/libhdf5_hl.a")

	list, err := p.FindLibraries([]string{"libhdf5_hl", "libhdf5"}, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(p.Lib(), "libhdf5_hl.a"),
		filepath.Join(p.Lib(), "libhdf5.a"),
	}
	if !slices.Equal(list.Files(), want) {
		t.Errorf("Files = %v, want %v", list.Files(), want)
	}

	flags := list.LinkFlags()
	wantFlags := []string{"-L" + p.Lib(), "-lhdf5_hl", "-lhdf5"}
	if !slices.Equal(flags, wantFlags) {
		t.Errorf("LinkFlags = %v, want %v", flags, wantFlags)
	}
}

func TestFindLibrariesShared(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("versioned .so layout")
	}
	suffix := sharedSuffix()
	p := install(t, "lib64/libhdf5"+suffix+".103.2.0")

	list, err := p.FindLibraries([]string{"libhdf5"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Files()) != 1 || filepath.Base(list.Files()[0]) != "libhdf5"+suffix+".103.2.0" {
		t.Errorf("Files = %v", list.Files())
	}

	flags := list.LinkFlags()
	if !slices.Contains(flags, "-lhdf5") {
		t.Errorf("LinkFlags = %v, want -lhdf5 from a versioned file name", flags)
	}
}

func TestFindLibrariesMissing(t *testing.T) {
	p := install(t, "lib/libhdf5.a")
	if _, err := p.FindLibraries([]string{"libhdf5_cpp"}, false); err == nil {
		t.Error("FindLibraries found a library that does not exist")
	}
}
