// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and carries the identifiers needed to follow a
// batch job across invocations.
//
// # Run Correlation
//
// Every CLI invocation generates a RunID (a UUID). WithRunID attaches it to the
// logger so that every entry written while processing a worklist, flushing the
// sink or saving a checkpoint can be correlated. ForOperation adds the
// operation name (sync, update-cards, update-sales, ...).
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log, logger.NewRunID())
//	log.Info("Run started")
package logger
