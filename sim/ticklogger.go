package sim

import "go.uber.org/zap"

// A TickLogger is a hook that logs the dispatch decisions made by a
// ClockGenerator.
type TickLogger struct {
	logger *zap.Logger
}

// NewTickLogger creates a TickLogger that writes to the given logger.
func NewTickLogger(logger *zap.Logger) *TickLogger {
	return &TickLogger{logger: logger}
}

// Func logs component dispatches and power-gate skips.
func (l *TickLogger) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosComponentDispatched:
		l.logger.Debug("component dispatched",
			zap.String("component", ctx.Item.(Component).Name()),
			zap.Uint64("tick", uint64(ctx.Detail.(TickCount))))
	case HookPosComponentSkipped:
		l.logger.Debug("component skipped, power gate closed",
			zap.String("component", ctx.Item.(Component).Name()),
			zap.Uint64("tick", uint64(ctx.Detail.(TickCount))))
	}
}
