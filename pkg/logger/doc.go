// Package logger provides structured logging with configurable log levels on top of
// log/slog. Output is text in dev and staging and JSON in prod, and every record
// passes through a Redactor so resolved secret values never reach the log.
package logger
