// Package logger builds *slog.Logger instances from functional options and
// provides attribute helpers with stable keys for state machine records.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler based on the configured
// Format, applies static attributes and, when ContextExtractor callbacks are
// registered, wraps the handler with LogHandlerDecorator so request-scoped
// values are appended on every Handle call.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "fsmctl"),
//	    logger.WithOutput(os.Stderr),
//	)
//	log.Debug("state changed", logger.FromState("idle"), logger.ToState("running"))
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
