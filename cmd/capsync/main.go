package main

import (
	"os"

	"github.com/capsync/capsync/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
