package internal

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mortar-build/mortar/internal/check"
	"github.com/mortar-build/mortar/internal/prefix"
	"github.com/mortar-build/mortar/recipe"
)

var (
	smokeVariants []string
	smokePrefix   string
	smokeDeps     []string
)

var smokeCmd = &cobra.Command{
	Use:   "smoke <package>[@version]",
	Short: "Run the recipe's smoke checks against an installed prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runSmoke,
}

func init() {
	smokeCmd.Flags().StringArrayVar(&smokeVariants, "variant", nil, "Variant selection (name=value, repeatable)")
	smokeCmd.Flags().StringVar(&smokePrefix, "prefix", "", "Installation prefix to verify")
	smokeCmd.Flags().StringArrayVar(&smokeDeps, "dep", nil, "Dependency prefix (name=dir, repeatable)")
	smokeCmd.MarkFlagRequired("prefix")
	rootCmd.AddCommand(smokeCmd)
}

func runSmoke(cmd *cobra.Command, args []string) error {
	r, ctx, err := resolveSpec(args[0], smokeVariants, smokeDeps, true)
	if err != nil {
		return err
	}
	if r.SmokeChecks == nil {
		return fmt.Errorf("%s has no smoke checks", r.Name)
	}

	var env recipe.Env
	if r.SetupBuildEnv != nil {
		env = r.SetupBuildEnv(ctx)
	}

	pre := prefix.Prefix(smokePrefix)
	results := check.Smoke(context.Background(), pre, r.SmokeChecks(ctx), env)

	failed := 0
	for _, res := range results {
		printOutcome(res)
		if res.Outcome == check.Failed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d smoke checks failed", failed, len(results))
	}
	return nil
}

func printOutcome(res check.SmokeResult) {
	c := color.New(color.FgGreen)
	switch res.Outcome {
	case check.Failed:
		c = color.New(color.FgRed)
	case check.Skipped:
		c = color.New(color.FgYellow)
	}
	c.Printf("%-8s", res.Outcome)
	fmt.Println(res.Check.Name)
}
