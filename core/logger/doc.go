// Package logger builds slog loggers and provides attribute helpers.
//
// Development loggers write colored text through tint; staging and production
// loggers write JSON:
//
//	log := logger.New(logger.WithDevelopment("webserver"))
//	log.Info("server started",
//		logger.Component("server"),
//		logger.Event("startup"),
//	)
//
// Attribute helpers return an empty slog.Attr for nil or empty values, which
// slog omits from output.
package logger
