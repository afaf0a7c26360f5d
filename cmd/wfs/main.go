package main

import (
	"os"

	"github.com/wonny/aegis-wfs/cmd/wfs/commands"
)

// main is the entry point for the WFS admission CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/wfs [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
