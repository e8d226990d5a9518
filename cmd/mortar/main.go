package main

import (
	"github.com/mortar-build/mortar/cmd/mortar/internal"

	_ "github.com/mortar-build/mortar/recipes/hdf5"
	_ "github.com/mortar-build/mortar/recipes/nco"
)

func main() {
	internal.Execute()
}
