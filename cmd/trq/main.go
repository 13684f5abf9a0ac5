// Package main is the entry point for the trq CLI tool.
package main

import (
	"github.com/hargabyte/trq/internal/cmd"
)

func main() {
	cmd.Execute()
}
