package halloc

import (
	"context"
	"log/slog"
)

// noopLogger discards every record. Heaps use it unless WithLogger is given.
func noopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func (h *Heap) logDebug(msg string, args ...any) {
	if !h.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	h.logger.Debug(msg, append([]any{"capacity", h.capacity}, args...)...)
}

func (h *Heap) logInfo(msg string, args ...any) {
	h.logger.Info(msg, append([]any{"capacity", h.capacity}, args...)...)
}
