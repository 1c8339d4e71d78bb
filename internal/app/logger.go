package app

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns a configured slog.Logger based on configuration.
func NewLogger(cfg *Config) *slog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg *Config, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true, ReplaceAttr: maskSecrets}
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// maskSecrets keeps credentials out of log output regardless of which
// handler logged them.
func maskSecrets(_ []string, a slog.Attr) slog.Attr {
	switch strings.ToLower(a.Key) {
	case "password", "secret", "jwt_secret":
		return slog.String(a.Key, "[REDACTED]")
	case "authorization", "token":
		return slog.String(a.Key, MaskCredential(a.Value.String()))
	}
	return a
}

// MaskCredential hides everything but the last four characters of a bearer
// credential.
func MaskCredential(value string) string {
	if len(value) < 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
