package main

import (
	"github.com/LLFourn/bdk-cli/cmd"
	"github.com/LLFourn/bdk-cli/internal/config"
)

func main() {
	config.LoadConfig()
	cmd.Execute()
}
