// main.go
//
// Entry point for the wordle binary.
//   - wordle serve        → HTTP + WebSocket game server
//   - wordle play         → interactive terminal game
//   - wordle words ...    → word list import, stats and export

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
