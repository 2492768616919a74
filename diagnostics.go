package lottiecore

import "go.uber.org/zap"

// Diagnostics is the host-installed warning channel described in spec §7:
// "warnings ... are surfaced through a diagnostic channel if the host
// installs one, otherwise silently discarded." Grounded on the corpus's
// dependency-injected *zap.Logger convention (rupor-github/fb2cng's
// config/logger.go), simplified to a single nil-safe wrapper instead of a
// full CLI logging config, since the core has no CLI (Non-goal).
type Diagnostics struct {
	log *zap.Logger
}

// NewDiagnostics wraps logger. A nil logger produces a Diagnostics that
// silently discards every warning, matching the spec's default.
func NewDiagnostics(logger *zap.Logger) Diagnostics {
	return Diagnostics{log: logger}
}

// Warn records a diagnostic. No-op if no logger was installed.
func (d Diagnostics) Warn(msg string, fields ...zap.Field) {
	if d.log == nil {
		return
	}
	d.log.Warn(msg, fields...)
}
