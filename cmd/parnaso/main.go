package main

import (
	"os"

	"github.com/ZhugeBane/parnaso-v6/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
