// Package logging provides structured logging utilities with context propagation.
//
// Key features:
//   - JSON and text output formats
//   - Request ID propagation
//   - Configurable log levels
//
// Example usage:
//
//	import "foodgram-client/internal/observability/logging"
//
//	func main() {
//	    logger := logging.New(os.Stderr, "json", os.Getenv("LOG_LEVEL"))
//	    logger.Info("browser started", slog.String("api", baseURL))
//	}
package logging
