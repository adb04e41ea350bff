//go:build cli
// +build cli

package main

import (
	_ "saebridge/custom"

	"saebridge/cmd"
	"saebridge/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
