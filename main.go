package main

import (
	"github.com/joho/godotenv"

	"github.com/gaurav-prasanna/mdforge/cmd"
)

func main() {
	// Optional local overrides; a missing .env is not an error.
	_ = godotenv.Load()

	cmd.Execute()
}
