// Package logger provides a structured logging facility based on Zap.
//
// Every record carries a timestamp, a level and a message. Records go to
// stdout and, when configured, to a local log file so unattended runs leave a
// trace next to the binary.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//   - File: extra output path, empty to disable
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log = logger.WithRunID(log, runID)
//	log.Info("Feed loaded", zap.Int("offers", n))
package logger
