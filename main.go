package main

import "github.com/TWRT/project-config-migrator/cmd"

// Set by ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
