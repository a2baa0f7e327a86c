package main

import (
	"os"

	"github.com/mathforge/mathforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
