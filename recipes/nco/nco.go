// Package nco is the build recipe for the NCO netCDF operator toolkit.
package nco

import (
	"github.com/mortar-build/mortar/pkgs/buildsys/autotools"
	"github.com/mortar-build/mortar/pkgs/version"
	"github.com/mortar-build/mortar/recipe"
)

func init() {
	recipe.Register(New())
}

// New returns the nco recipe.
func New() *recipe.Recipe {
	r := &recipe.Recipe{
		Name:     "nco",
		Homepage: "http://nco.sourceforge.net/",
		URL:      "https://github.com/nco/nco/archive/5.0.0.tar.gz",

		Versions: []recipe.VersionSpec{
			{Version: "5.0.0", SHA256: "2340c802808e03508a765c73e2ea69ca60eb00283c8f0fb2d4d84f86d538ab48"},
			{Version: "4.9.9", SHA256: "058f04bd1c57354f8e3c90e6529f7f5a4542bb702419bfbbbdc500d5e1ed06ca"},
			{Version: "4.9.8", SHA256: "1ef3e887f0841cec3b117ec14830b7d002f7a3a4d0e33a95ae1aa66d0d66ee4b"},
			{Version: "4.9.7", SHA256: "934e247d9592f3e6087ea8985507077873559b52679b9c9a1ecae40668a352dc"},
			{Version: "4.9.3", SHA256: "eade5b79f3814b11ae3f52c34159567e76a73f05f0ab141eccaac68f0ca94aee"},
			{Version: "4.9.2", SHA256: "1a98c37c946c00232fa7319d00d1d80f77603adda7c9239d10d68a8a3545a4d5"},
			{Version: "4.9.1", SHA256: "9592efaf0dfd6ccdefd0b417d990cfccae7e89c20d90fb44ead6263009778834"},
			{Version: "4.9.0", SHA256: "21dd53f427793cbc52d1c007e9b7339c83f6944a937a1acfbbe733e49b65378b"},
			{Version: "4.8.1", SHA256: "ddae3fed46c266798ed1176d6a70b36376d2d320fa933c716a623172d1e13c68"},
			{Version: "4.8.0", SHA256: "91f95ebfc9baa888adaec3016ca18a6297e2881b1429d74543a27fdfbe15fcab"},
			{Version: "4.7.9", SHA256: "048f6298bceb40913c3ae433f875dea1e9129b1c86019128e7271d08f274a879"},
			{Version: "4.6.7", SHA256: "2fe2dabf14a60bface694307cbe719df57103682b715348e9d77bfe8d31487f3"},
			{Version: "4.6.6", SHA256: "079d83f800b73d9b12b8de1634a88c2cbe40a639aaf7bc056cd2e836c6047697"},
			{Version: "4.6.5", SHA256: "d5b18c9ada25d062a539e2995be445db39e8021c56cd4b20c88485cb2452c7ae"},
			{Version: "4.6.4", SHA256: "1c2ab906fc81f91bf8aff3e6da27ae7a4c89821c5836d787188fff5262418062"},
			{Version: "4.6.3", SHA256: "414ccb349ed25cb37b669fb87f9e2e4ca8d58c2f45538feda199bf895b982bf8"},
			{Version: "4.6.2", SHA256: "cec82e35d47a6bbf8ab9301d5ff4cf08051f489b49e8529ebf780380f2c21ed3"},
			{Version: "4.6.1", SHA256: "7433fe5901f48eb5170f24c6d53b484161e1c63884d9350600070573baf8b8b0"},
			{Version: "4.5.5", SHA256: "bc6f5b976fdfbdec51f2ebefa158fa54672442c2fd5f042ba884f9f32c2ad666"},
		},

		Variants: []recipe.Variant{
			recipe.Bool("doc", false, "Build/install NCO TexInfo-based documentation"),
		},

		// See "Compilation Requirements" at http://nco.sourceforge.net/#bld
		Dependencies: []recipe.Dependency{
			{Name: "netcdf-c"},
			// required for ncap2
			{Name: "antlr", Spec: version.Only("2.7.7")},
			// desirable for ncap2
			{Name: "gsl"},
			// allows dimensional unit transformations
			{Name: "udunits"},
			{Name: "flex", Kind: recipe.DepBuild},
			{Name: "bison", Kind: recipe.DepBuild},
			{Name: "texinfo", Spec: version.AtLeast("4.12"), Kind: recipe.DepBuild,
				When: recipe.Condition{Variants: []recipe.VariantCond{recipe.WithOn("doc")}}},
		},

		Conflicts: []recipe.Conflict{
			{If: recipe.Condition{Compiler: "gcc", CompilerVersions: version.AtLeast("9")},
				When: recipe.Condition{Versions: []version.Range{version.AtMost("4.7.8")}},
				Msg:  "releases before 4.7.9 do not build with gcc 9"},
		},

		Patches: []recipe.Patch{
			// https://github.com/nco/nco/issues/43
			{File: "NUL-0-NULL.patch",
				When: recipe.Condition{Versions: []version.Range{version.AtMost("4.6.7")}}},
		},

		URLForVersion: urlForVersion,
		SetupBuildEnv: setupBuildEnv,
	}
	r.BuildDefs = configureArgs
	return r
}

func urlForVersion(v version.V) string {
	return "https://github.com/nco/nco/archive/" + v.String() + ".tar.gz"
}

func configureArgs(ctx *recipe.BuildContext) []string {
	return []string{autotools.FromVariant("doc", ctx, "doc")}
}

// setupBuildEnv points the configure scripts at the netCDF, ANTLR and
// UDUnits installations.
func setupBuildEnv(ctx *recipe.BuildContext) recipe.Env {
	env := recipe.NewEnv()
	if netcdf, ok := ctx.DepPrefix("netcdf-c"); ok {
		env = env.Set("NETCDF_INC", netcdf.Include())
		env = env.Set("NETCDF_LIB", netcdf.Lib())
	}
	if antlr, ok := ctx.DepPrefix("antlr"); ok {
		env = env.Set("ANTLR_ROOT", antlr.String())
	}
	if udunits, ok := ctx.DepPrefix("udunits"); ok {
		env = env.Set("UDUNITS2_PATH", udunits.String())
	}
	return env
}
