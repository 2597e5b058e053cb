// Package main is the single-binary entrypoint for Momentum.
package main

import "github.com/momentum-labs/momentum/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
