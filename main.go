package main

import (
	"log/slog"
	"os"

	"github.com/taigrr/picklist/internal/cmd"
	"github.com/taigrr/picklist/internal/log"
)

func main() {
	defer log.RecoverPanic("main", func() {
		slog.Error("Application terminated due to unhandled panic")
		os.Exit(1)
	})

	cmd.Execute()
}
