// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of passwords and personal metadata tokens
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Security Features
//
// The SecureHandler masks values in log output when:
//   - the attribute key names a password, candidate or token
//   - the value looks like a stored password hash or private key
//   - the value contains a literal registered in a Secrets set
//
// Even in verbose mode, sensitive values are masked so that logs can be
// shared without exposing the passwords being audited.
//
// # Usage
//
//	secrets := log.NewSecrets("hunter2", "vaishnav")
//	logger := log.NewSecureLogger(os.Stderr, true, secrets)
//
//	logger.Info("evaluated",
//	    "input", "hunter2",   // masked: registered secret
//	    "class", "Weak",      // kept
//	)
//
//	slog.SetDefault(logger)
package log
