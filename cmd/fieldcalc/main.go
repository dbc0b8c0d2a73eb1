package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

var version = "dev"

func main() {
	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelWarn}))

	if err := NewRootCommand(log).Execute(); err != nil {
		log.Error("fieldcalc failed", "error", err)
		os.Exit(1)
	}
}
