package main

import (
	"os"

	"github.com/aldenhart/mprisctl/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
