package main

import (
	"context"
	"fmt"
	"os"
)

// @title Assignment Sync API
// @version 1.0
// @description Trigger and inspect Canvas and Google Calendar to Notion sync runs.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(GetExitCode(err))
	}
}
