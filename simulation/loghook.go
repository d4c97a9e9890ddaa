package simulation

import (
	"log/slog"

	"github.com/sarchlab/cachesim/cache"
)

// A LogHook writes every access and the end of every run to a logger.
type LogHook struct {
	*slog.Logger
}

// NewLogHook creates a LogHook that writes to the logger.
func NewLogHook(logger *slog.Logger) *LogHook {
	return &LogHook{Logger: logger}
}

// Func logs accesses at debug level and the end of a run at info level.
func (h *LogHook) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosAccess:
		h.logAccess(ctx)
	case HookPosRunEnd:
		result := ctx.Item.(*Result)
		h.Info("simulation finished",
			"accesses", result.Stats.Accesses(),
			"hits", result.Stats.Hits,
			"misses", result.Stats.Misses,
		)
	}
}

func (h *LogHook) logAccess(ctx HookCtx) {
	ref := ctx.Item.(*cache.Reference)
	detail := ctx.Detail.(AccessDetail)

	h.Debug("access",
		"position", detail.Position,
		"word_addr", uint64(ref.WordAddr),
		"bin_addr", string(ref.BinAddr),
		"tag", ref.Tag.Or("-"),
		"index", ref.Index.Or("-"),
		"offset", ref.Offset.Or("-"),
		"status", ref.Status().String(),
	)
}
