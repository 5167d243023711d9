package main

import (
	"os"

	"github.com/wonny/drip/cmd/drip/commands"
)

// main is the entry point for the drip CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/drip [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
