package main

import (
	"os"

	"github.com/tylerjwoodfin/atlas-man/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
