// Package logging provides centralized zap-based logging for udplog tools.
//
// Logging is silent by default so interactive CLI output stays clean.
// Set the UDPLOG_LOG_LEVEL environment variable (debug, info, warn, error)
// to enable diagnostic output on stderr.
package logging
