package main

import (
	"github.com/joho/godotenv"

	"github.com/teemow/eventmanager/cmd"
)

// version will be set by goreleaser during build
var version = "dev"

func main() {
	// A .env file may provide GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and
	// EVENTMANAGER_* settings. It is optional.
	_ = godotenv.Load()

	cmd.SetVersion(version)
	cmd.Execute()
}
