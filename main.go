package main

import (
	"os"

	"github.com/jmcampanini/branchr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
