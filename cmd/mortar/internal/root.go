package internal

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mortar-build/mortar/internal/config"
	"github.com/mortar-build/mortar/internal/prefix"
	"github.com/mortar-build/mortar/pkgs/version"
	"github.com/mortar-build/mortar/recipe"
)

var rootCmd = &cobra.Command{
	Use:   "mortar",
	Short: "mortar is a package recipe toolkit",
	Long:  `mortar inspects package build recipes and verifies installed artifacts.`,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "mortar.toml", "Tool configuration file")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}

// resolveSpec turns a "name@version" argument plus command-line selections
// into a resolved build context. An omitted version selects the latest
// declared one.
func resolveSpec(arg string, variants, prefixes []string, runTests bool) (*recipe.Recipe, *recipe.BuildContext, error) {
	name, v := recipe.ParseSpec(arg)
	r, ok := recipe.Lookup(name)
	if !ok {
		return nil, nil, fmt.Errorf("unknown package %q, see 'mortar list'", name)
	}
	if v == "" {
		v = latestVersion(r)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	opts := recipe.ResolveOptions{
		Variants: make(map[string]string),
		Compiler: cfg.Toolchain(),
		MPI:      cfg.MPIWrappers(),
		Platform: cfg.Platform,
		RunTests: runTests || cfg.RunTests,
	}
	for _, kv := range variants {
		k, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, nil, fmt.Errorf("invalid variant %q, want name=value", kv)
		}
		opts.Variants[k] = val
	}
	if len(prefixes) > 0 {
		opts.DepPrefixes = make(map[string]prefix.Prefix, len(prefixes))
		for _, kv := range prefixes {
			k, dir, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, nil, fmt.Errorf("invalid dependency prefix %q, want name=dir", kv)
			}
			opts.DepPrefixes[k] = prefix.Prefix(dir)
		}
	}

	ctx, err := r.Resolve(v, opts)
	if err != nil {
		return nil, nil, err
	}
	return r, ctx, nil
}

func latestVersion(r *recipe.Recipe) version.V {
	vs := make([]version.V, 0, len(r.Versions))
	for _, spec := range r.Versions {
		vs = append(vs, spec.Version)
	}
	return version.Latest(vs)
}
