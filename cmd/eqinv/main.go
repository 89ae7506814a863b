package main

import (
	"os"

	"github.com/rustyeddy/eqinv/cmd/eqinv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
