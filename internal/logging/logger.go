// Package logging builds the zap logger shared by the server and services.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger in production and a console logger otherwise.
// Unknown levels fall back to info.
func New(level string, production bool) (*zap.Logger, error) {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.InitialFields = map[string]interface{}{"service": "recipeshare"}

	return cfg.Build()
}

// Safe drops fields that would carry image payloads into the log.
func Safe(fields ...zap.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if isPayloadKey(f.Key) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func isPayloadKey(key string) bool {
	k := strings.ToLower(key)
	return k == "image" || strings.Contains(k, "image_data") || strings.Contains(k, "base64")
}
