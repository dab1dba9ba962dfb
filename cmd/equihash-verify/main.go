package main

import "github.com/equihash-verify/equihash/cmd/equihash-verify/cmd"

var (
	// Version is the version of the binary.
	Version = "0.0.0"

	// Commit is the commit hash of the binary.
	Commit = ""
)

func main() {
	cmd.Version = Version
	cmd.Commit = Commit
	cmd.Execute()
}
