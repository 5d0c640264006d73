package main

import (
	"os"

	"github.com/kubefold/kubefold/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
