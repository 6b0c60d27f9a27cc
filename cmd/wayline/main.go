package main

import (
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/waylinehq/wayline/internal/logging"
)

func main() {
	// Text logs for humans at a terminal, JSON for everything else.
	if term.IsTerminal(int(os.Stderr.Fd())) {
		slog.SetDefault(logging.New(slog.LevelInfo))
	} else {
		slog.SetDefault(logging.NewJSON(slog.LevelInfo))
	}

	Execute()
}
