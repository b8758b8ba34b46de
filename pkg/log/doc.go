// Package log provides the logging abstraction used by envclean components.
//
// Components log through the Logger interface so that library users can plug
// in their own logging. A zerolog adapter is provided for the CLI and a no-op
// logger for tests and silent embedding.
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger.Info("normalized", log.String("path", ".env"), log.Int("merged", 2))
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package log
