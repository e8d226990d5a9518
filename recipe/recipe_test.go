package recipe

import (
	"errors"
	"testing"

	"github.com/mortar-build/mortar/pkgs/version"
	"github.com/mortar-build/mortar/toolchain"
)

func testRecipe() *Recipe {
	return &Recipe{
		Name: "widget",
		URL:  "https://example.com/widget-1.0.tar.gz",
		Versions: []VersionSpec{
			{Version: "2.0", SHA256: "aa"},
			{Version: "1.0", SHA256: "bb"},
			{Version: "0.9", Branch: "develop"},
		},
		Variants: []Variant{
			Bool("shared", true, "build shared libraries"),
			Bool("docs", false, "build documentation"),
			Enum("io", "posix", "io backend", "posix", "mmap"),
		},
		Dependencies: []Dependency{
			{Name: "zlib"},
			{Name: "doxygen", Kind: DepBuild,
				When: Condition{Variants: []VariantCond{WithOn("docs")}}},
			{Name: "numafoo", When: Condition{NotPlatform: "darwin"}},
		},
		Conflicts: []Conflict{
			{If: Condition{Variants: []VariantCond{WithValue("io", "mmap")}},
				When: Condition{Versions: []version.Range{version.AtMost("1.0")}},
				Msg:  "mmap io requires 2.0"},
		},
		Patches: []Patch{
			{File: "old.patch", When: Condition{Versions: []version.Range{version.AtMost("1.0")}}},
			{URL: "https://example.com/gcc.patch", SHA256: "cc",
				When: Condition{Compiler: "gcc", CompilerVersions: version.AtLeast("8")}},
		},
	}
}

func TestResolveDefaults(t *testing.T) {
	r := testRecipe()
	ctx, err := r.Resolve("2.0", ResolveOptions{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !ctx.Enabled("shared") || ctx.Enabled("docs") {
		t.Errorf("defaults: shared=%v docs=%v, want on/off", ctx.Enabled("shared"), ctx.Enabled("docs"))
	}
	if got := ctx.Variant("io"); got != "posix" {
		t.Errorf("io = %q, want posix", got)
	}
}

func TestResolveSelection(t *testing.T) {
	tests := []struct {
		name     string
		version  version.V
		variants map[string]string
		wantErr  error
	}{
		{name: "valid", version: "2.0", variants: map[string]string{"docs": "on", "io": "mmap"}},
		{name: "unknown variant", version: "2.0", variants: map[string]string{"mpi": "on"}, wantErr: ErrIncompatible},
		{name: "out of domain", version: "2.0", variants: map[string]string{"io": "async"}, wantErr: ErrIncompatible},
		{name: "conflict", version: "1.0", variants: map[string]string{"io": "mmap"}, wantErr: ErrIncompatible},
		{name: "conflict out of scope", version: "2.0", variants: map[string]string{"io": "mmap"}},
	}
	r := testRecipe()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.version, ResolveOptions{Variants: tt.variants})
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Resolve: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Resolve error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveUndeclaredVersion(t *testing.T) {
	r := testRecipe()
	if _, err := r.Resolve("1.5", ResolveOptions{}); err != nil {
		t.Fatalf("Resolve with URL template: %v", err)
	}

	r.URL = ""
	if _, err := r.Resolve("1.5", ResolveOptions{}); !errors.Is(err, ErrIncompatible) {
		t.Fatalf("Resolve without any URL = %v, want ErrIncompatible", err)
	}
}

func TestDependenciesFor(t *testing.T) {
	r := testRecipe()

	ctx, err := r.Resolve("2.0", ResolveOptions{Platform: "darwin"})
	if err != nil {
		t.Fatal(err)
	}
	if got := depNames(r.DependenciesFor(ctx)); len(got) != 1 || got[0] != "zlib" {
		t.Errorf("darwin deps = %v, want [zlib]", got)
	}

	ctx, err = r.Resolve("2.0", ResolveOptions{
		Platform: "linux",
		Variants: map[string]string{"docs": "on"},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := depNames(r.DependenciesFor(ctx))
	want := []string{"zlib", "doxygen", "numafoo"}
	if len(got) != len(want) {
		t.Fatalf("linux+docs deps = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("linux+docs deps = %v, want %v", got, want)
		}
	}
}

func depNames(deps []Dependency) []string {
	names := make([]string, len(deps))
	for i, d := range deps {
		names[i] = d.Name
	}
	return names
}

func TestPatchesFor(t *testing.T) {
	r := testRecipe()

	gcc9 := toolchain.Compiler{Family: toolchain.GCC, Version: "9", CC: "gcc"}
	clang := toolchain.Compiler{Family: toolchain.Clang, Version: "12", CC: "clang"}

	tests := []struct {
		name     string
		version  version.V
		compiler toolchain.Compiler
		want     []string
	}{
		{name: "old release with gcc", version: "1.0", compiler: gcc9,
			want: []string{"old.patch", "https://example.com/gcc.patch"}},
		{name: "old release with clang", version: "1.0", compiler: clang,
			want: []string{"old.patch"}},
		{name: "new release with clang", version: "2.0", compiler: clang,
			want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := r.Resolve(tt.version, ResolveOptions{Compiler: tt.compiler})
			if err != nil {
				t.Fatal(err)
			}
			patches := r.PatchesFor(ctx)
			if len(patches) != len(tt.want) {
				t.Fatalf("got %d patches, want %d", len(patches), len(tt.want))
			}
			for i, p := range patches {
				if p.Locator() != tt.want[i] {
					t.Errorf("patch %d = %q, want %q", i, p.Locator(), tt.want[i])
				}
			}
		})
	}
}

func TestConditionMatches(t *testing.T) {
	r := testRecipe()
	ctx, err := r.Resolve("1.0", ResolveOptions{
		Compiler: toolchain.Compiler{Family: toolchain.GCC, Version: "10.2", CC: "gcc"},
		Platform: "linux",
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{name: "zero condition", cond: Condition{}, want: true},
		{name: "version in range",
			cond: Condition{Versions: []version.Range{version.Between("0.9", "1.2")}}, want: true},
		{name: "version out of range",
			cond: Condition{Versions: []version.Range{version.AtLeast("2.0")}}, want: false},
		{name: "any of several ranges",
			cond: Condition{Versions: []version.Range{version.Only("0.5"), version.Only("1.0")}}, want: true},
		{name: "compiler family and version",
			cond: Condition{Compiler: toolchain.GCC, CompilerVersions: version.AtLeast("8")}, want: true},
		{name: "compiler version too low",
			cond: Condition{Compiler: toolchain.GCC, CompilerVersions: version.AtLeast("11")}, want: false},
		{name: "wrong compiler family",
			cond: Condition{Compiler: toolchain.Clang}, want: false},
		{name: "variant value",
			cond: Condition{Variants: []VariantCond{WithOn("shared"), WithOff("docs")}}, want: true},
		{name: "variant mismatch",
			cond: Condition{Variants: []VariantCond{WithOn("docs")}}, want: false},
		{name: "platform",
			cond: Condition{Platform: "linux"}, want: true},
		{name: "not platform",
			cond: Condition{NotPlatform: "linux"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cond.Matches(ctx); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		arg     string
		name    string
		version version.V
	}{
		{"hdf5@1.10.7", "hdf5", "1.10.7"},
		{"hdf5", "hdf5", ""},
		{"nco@develop", "nco", "develop"},
	}
	for _, tt := range tests {
		name, v := ParseSpec(tt.arg)
		if name != tt.name || v != tt.version {
			t.Errorf("ParseSpec(%q) = %q, %q, want %q, %q", tt.arg, name, v, tt.name, tt.version)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Recipe)
	}{
		{"no name", func(r *Recipe) { r.Name = "" }},
		{"duplicate variant", func(r *Recipe) { r.Variants = append(r.Variants, Bool("shared", false, "")) }},
		{"bad default", func(r *Recipe) { r.Variants[2].Default = "async" }},
		{"remote patch without sha256", func(r *Recipe) { r.Patches[1].SHA256 = "" }},
		{"duplicate version", func(r *Recipe) { r.Versions = append(r.Versions, VersionSpec{Version: "1.0"}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRecipe()
			tt.mutate(r)
			if err := r.validate(); err == nil {
				t.Error("validate accepted an invalid recipe")
			}
		})
	}
}

func TestSourceURL(t *testing.T) {
	r := testRecipe()
	r.Git = "https://example.com/widget.git"
	r.URLForVersion = func(v version.V) string {
		return "https://example.com/widget-" + v.String() + ".tar.gz"
	}
	r.Versions[0].URL = "https://mirror.example.com/widget-2.0.tar.gz"

	tests := []struct {
		version version.V
		want    string
	}{
		{"2.0", "https://mirror.example.com/widget-2.0.tar.gz"},
		{"1.0", "https://example.com/widget-1.0.tar.gz"},
		{"0.9", "https://example.com/widget.git"},
		{"1.5", "https://example.com/widget-1.5.tar.gz"},
	}
	for _, tt := range tests {
		if got := r.SourceURL(tt.version); got != tt.want {
			t.Errorf("SourceURL(%s) = %q, want %q", tt.version, got, tt.want)
		}
	}
}
