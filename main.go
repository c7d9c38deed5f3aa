package main

import (
	"os"

	"github.com/licensure/examprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
