// Package logger builds slog loggers and provides attribute helpers for command
// lifecycle logging.
//
// # Creating loggers
//
//	log := logger.New(
//		logger.WithProduction("orders"),
//		logger.WithOutput(os.Stderr),
//	)
//
// Without options New writes text at info level to stdout. WithDevelopment
// switches to debug level; WithProduction switches to JSON.
//
// # Attributes
//
// Helpers return an empty slog.Attr when there is nothing to log, so they can be
// passed unconditionally:
//
//	log.LogAttrs(ctx, slog.LevelInfo, "command completed",
//		logger.Command(name),
//		logger.Timestamp(at),
//		logger.Error(err), // dropped when err is nil
//	)
//
// The command strategies in core/command log through these helpers, so records
// from LogErrors and LogAnalytics always use the keys "command", "timestamp"
// and "error".
package logger
