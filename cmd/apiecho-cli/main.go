package main

import (
	"github.com/turtacn/apiecho/cmd/cli"
)

// main is the entry point for the apiecho command-line tool.
func main() {
	cli.Execute()
}
