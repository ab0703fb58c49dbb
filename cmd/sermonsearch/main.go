package main

import (
	"github.com/joho/godotenv"
	"sermonsearch/internal/cli"
)

func main() {
	// API keys (OpenAI, Cohere, Qdrant) are loaded from .env when present.
	godotenv.Load()
	cli.Execute()
}
