package main

import (
	"os"

	"github.com/anvu/studyglass/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
