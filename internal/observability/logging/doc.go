// Package logging provides structured logging utilities with context propagation.
//
// It wraps log/slog with the level and format handling shared by the API,
// the worker and the CLI.
//
// Example usage:
//
//	logger := logging.NewLogger()
//	logger.Info("application started", slog.String("version", "1.0"))
//
//	func handleRequest(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, slog.Default())
//	    logger.Info("processing request")
//	}
package logging
