package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"

	"github.com/pagelens/pagelens/internal/cli"
)

func main() {
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	if err := fang.Execute(context.Background(), cli.RootCmd); err != nil {
		os.Exit(1)
	}
}
