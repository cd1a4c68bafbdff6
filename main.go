// Package main is the entry point for the recase CLI.
package main

import "recase.dev/pkg/recase/cmd"

func main() {
	cmd.Execute()
}
