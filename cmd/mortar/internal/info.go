package internal

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mortar-build/mortar/pkgs/version"
	"github.com/mortar-build/mortar/recipe"
)

var (
	infoVariants []string
	infoMatrix   bool
)

var infoCmd = &cobra.Command{
	Use:   "info <package>[@version]",
	Short: "Show a recipe's versions, variants and dependencies",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().StringArrayVar(&infoVariants, "variant", nil, "Variant selection (name=value, repeatable)")
	infoCmd.Flags().BoolVar(&infoMatrix, "matrix", false, "List every variant combination")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	r, ctx, err := resolveSpec(args[0], infoVariants, nil, false)
	if err != nil {
		return err
	}

	fmt.Printf("%s@%s\n", r.Name, ctx.Version)
	fmt.Printf("  homepage: %s\n", r.Homepage)
	fmt.Printf("  source:   %s\n", r.SourceURL(ctx.Version))

	fmt.Println("  versions:")
	for _, vs := range r.Versions {
		switch {
		case vs.Branch != "":
			fmt.Printf("    %s\t(branch %s)\n", vs.Version, vs.Branch)
		default:
			fmt.Printf("    %s\n", vs.Version)
		}
	}

	fmt.Println("  variants:")
	for _, vr := range r.Variants {
		fmt.Printf("    %s=%s\t%s\n", vr.Name, ctx.Variant(vr.Name), vr.Description)
	}

	deps := r.DependenciesFor(ctx)
	if len(deps) > 0 {
		fmt.Println("  dependencies:")
		for _, d := range deps {
			fmt.Printf("    %s%s\t(%s)\n", d.Name, rangeSuffix(d.Spec), kindNames(d.Kind))
		}
	}

	patches := r.PatchesFor(ctx)
	if len(patches) > 0 {
		fmt.Println("  patches:")
		for _, p := range patches {
			fmt.Printf("    %s\n", p.Locator())
		}
	}

	m := r.Matrix(nil)
	fmt.Printf("  configurations: %d\n", m.CombinationCount())
	if infoMatrix {
		for _, combo := range m.Combinations() {
			fmt.Printf("    %s\n", combo)
		}
	}
	return nil
}

// rangeSuffix renders a version constraint as "@from:to", or "" when the
// dependency accepts any version.
func rangeSuffix(r version.Range) string {
	switch {
	case r.From == "" && r.To == "":
		return ""
	case r.From == r.To:
		return "@" + r.From.String()
	default:
		return fmt.Sprintf("@%s:%s", r.From, r.To)
	}
}

func kindNames(k recipe.DepKind) string {
	var names []string
	if k.Has(recipe.DepBuild) {
		names = append(names, "build")
	}
	if k.Has(recipe.DepLink) {
		names = append(names, "link")
	}
	if k.Has(recipe.DepRun) {
		names = append(names, "run")
	}
	return strings.Join(names, ",")
}
