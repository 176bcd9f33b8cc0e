package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/gibberlab/gibber/internal/cli"
)

func main() {
	// A local .env may carry judge API keys; missing files are fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
