package logging

import (
	"log/slog"
	"os"

	"gitlab.com/onboardly/accounts-backend/pkg/env"
)

// Setup builds the process-wide logger. Local mode gets human-readable
// output, everything else ships JSON.
func Setup(mode env.Mode) *slog.Logger {
	opts := &slog.HandlerOptions{Level: mode.SlogLevel()}

	var handler slog.Handler
	if mode == env.Local || mode == env.Test {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
