/*
File    : atto/internal/logging/logging.go
Author  : akashmaji(@iisc.ac.in)

Package logging constructs atto's structured loggers, built on the
standard library's log/slog; each caller builds its own instance. No repo in the corpus this
project is grounded on pulls in a dedicated structured-logging library
(zerolog, zap), so this is a deliberate standard-library choice rather
than an omission — see DESIGN.md.
*/
package logging

import (
	"log/slog"
	"os"
)

// New returns a text-handler logger writing to w at the given level,
// used by cmd/atto and the REPL server to report connection and
// module-load events without interleaving with program output.
func New(w *os.File, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
