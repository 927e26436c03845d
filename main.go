// Package main provides the entry point for the gsc CLI client.
// It delegates execution to the cmd package to maintain clean separation
// between main entry logic and command implementation details.
package main

import (
	"gsc/cmd"
)

func main() {
	cmd.Execute()
}
