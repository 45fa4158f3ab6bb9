// main is the entry point for the bikedash CLI.
package main

import (
	"os"

	"github.com/huangsam/bikedash/cmd"
	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/internal/iocache"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is normal; values may come from the real environment
	_ = godotenv.Load()

	code := run()
	os.Exit(code)
}

// run executes the CLI and releases resources before the process exits.
func run() int {
	defer iocache.CloseStores()
	defer contract.SyncLogger()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
	}()

	if err := cmd.Execute(); err != nil {
		contract.LogWarn("Command failed", err)
		return 1
	}
	return 0
}
