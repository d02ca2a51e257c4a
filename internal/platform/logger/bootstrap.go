package logger

import (
	"context"
	"io"
	"log"
	"os"
)

// BootstrapLogger is used while configuration is still being loaded, before
// the configured SlogAdapter exists.
type BootstrapLogger struct {
	logger *log.Logger
}

// NewBootstrapLogger writes to stdout with a [BOOTSTRAP] prefix.
func NewBootstrapLogger() *BootstrapLogger {
	return NewBootstrapLoggerTo(os.Stdout)
}

// NewBootstrapLoggerTo writes to w. The CLI uses stderr so stdout stays clean.
func NewBootstrapLoggerTo(w io.Writer) *BootstrapLogger {
	return &BootstrapLogger{
		logger: log.New(w, "[BOOTSTRAP] ", log.LstdFlags|log.Lshortfile),
	}
}

func (b *BootstrapLogger) Debug(ctx context.Context, msg string, args ...any) {
	b.logger.Printf("DEBUG: %s %v", msg, args)
}

func (b *BootstrapLogger) Info(ctx context.Context, msg string, args ...any) {
	b.logger.Printf("INFO: %s %v", msg, args)
}

func (b *BootstrapLogger) Warn(ctx context.Context, msg string, args ...any) {
	b.logger.Printf("WARN: %s %v", msg, args)
}

func (b *BootstrapLogger) Error(ctx context.Context, msg string, args ...any) {
	b.logger.Printf("ERROR: %s %v", msg, args)
}

var _ Logger = (*BootstrapLogger)(nil)
