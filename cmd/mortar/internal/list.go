package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mortar-build/mortar/recipe"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available package recipes",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	for _, name := range recipe.Names() {
		r, _ := recipe.Lookup(name)
		fmt.Printf("%s\t%s\n", name, r.Homepage)
	}
	return nil
}
