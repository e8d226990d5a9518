package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mortar-build/mortar/internal/prefix"
)

var (
	checkVariants []string
	checkPrefix   string
	checkDeps     []string
)

var checkCmd = &cobra.Command{
	Use:   "check <package>[@version]",
	Short: "Verify an installed package",
	Long: `Check compiles and runs the recipe's verification program against the
installation under --prefix and compares its output with the expected
version banner.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringArrayVar(&checkVariants, "variant", nil, "Variant selection (name=value, repeatable)")
	checkCmd.Flags().StringVar(&checkPrefix, "prefix", "", "Installation prefix to verify")
	checkCmd.Flags().StringArrayVar(&checkDeps, "dep", nil, "Dependency prefix (name=dir, repeatable)")
	checkCmd.MarkFlagRequired("prefix")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	r, ctx, err := resolveSpec(args[0], checkVariants, checkDeps, true)
	if err != nil {
		return err
	}
	if r.CheckInstall == nil {
		return fmt.Errorf("%s has no install check", r.Name)
	}

	pre := prefix.Prefix(checkPrefix)
	if err := r.CheckInstall(ctx, &pre); err != nil {
		return err
	}
	fmt.Printf("%s@%s: install check passed\n", r.Name, ctx.Version)
	return nil
}
