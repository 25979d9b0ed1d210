//go:build cli
// +build cli

package main

import (
	_ "chatshop.GO/custom"

	"chatshop.GO/cmd"
	"chatshop.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
