// cmd/ideamock/main.go
package main

import (
	cmd "github.com/mwiater/ideamock/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the ideamock CLI by delegating to the cobra root command.
func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
