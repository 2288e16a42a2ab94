// Package services defines shared utilities consumed by the cover providers,
// resolvers and the engine.
//
// Key responsibilities:
//   - Structured error markers (network, parse, cancelled, not found,
//     validation) plus the Wrap helper so every layer reports failures in the
//     same shape and callers can classify them with errors.Is.
//   - Context helpers that stamp correlation identifiers and the title under
//     resolution for logging.
//
// Cancellation is the one condition that must survive every layer; use
// Cancelled and IsCancelled rather than comparing context errors directly.
package services
