package main

import (
	"github.com/mrlokans/literalura/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

var execute = cli.Execute

func main() {
	execute(Version + " (" + Commit + ")")
}
