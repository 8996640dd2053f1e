// Package logging is BoxTrack's log pipeline: JSON lines on stdout for
// the process log, plus an async-batched sink into the system_logs table
// for ERROR and above, with a retention sweep.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs the early boot logger. It runs before the database is
// connected; main swaps in the full stdout+Postgres pipeline once the
// system_logs sink is available.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
