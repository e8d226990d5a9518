package internal

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mortar-build/mortar/recipe"
)

var (
	flagsVariants []string
	flagsInput    []string
)

var flagsCmd = &cobra.Command{
	Use:   "flags <package>[@version]",
	Short: "Show the adjusted compiler flags and build definitions",
	Long: `Flags applies the recipe's flag handler to each flag category and prints
the resulting command-line flags and build-system injected flags, followed
by the build definitions for the resolved context.`,
	Args: cobra.ExactArgs(1),
	RunE: runFlags,
}

func init() {
	flagsCmd.Flags().StringArrayVar(&flagsVariants, "variant", nil, "Variant selection (name=value, repeatable)")
	flagsCmd.Flags().StringArrayVar(&flagsInput, "flag", nil, "Initial flags applied to every category (repeatable)")
	rootCmd.AddCommand(flagsCmd)
}

func runFlags(cmd *cobra.Command, args []string) error {
	_, ctx, err := resolveSpec(args[0], flagsVariants, nil, false)
	if err != nil {
		return err
	}

	categories := []recipe.FlagCategory{
		recipe.CFlags, recipe.CxxFlags, recipe.FFlags, recipe.LDLibs,
	}
	for _, cat := range categories {
		adj := ctx.AdjustFlags(cat, flagsInput)
		fmt.Printf("%s: %s\n", cat, strings.Join(adj.Flags, " "))
		if len(adj.BuildFlags) > 0 {
			fmt.Printf("%s (build system): %s\n", cat, strings.Join(adj.BuildFlags, " "))
		}
	}

	if ctx.Recipe.BuildDefs != nil {
		fmt.Println("build definitions:")
		for _, def := range ctx.Recipe.BuildDefs(ctx) {
			fmt.Printf("  %s\n", def)
		}
	}
	return nil
}
