// Package log records connection supervisor events.
//
// It is separate from operational logging (slog). The event trace is a
// machine-readable account of every connection attempt, bind, rejection and
// lifecycle command, meant for offline analysis of flaky radio links.
//
// # Basic Usage
//
// A supervisor accepts any Logger:
//
//	// During development: log to console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// In the field: write to a binary file
//	cfg.EventLogger, _ = log.NewFileLogger("/var/log/sphero/link.slog")
//
//	// Both
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Event files are a sequence of CBOR maps with integer keys. The sphero-log
// command prints and summarizes them.
package log
