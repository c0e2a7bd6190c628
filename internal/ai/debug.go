package ai

import "sync/atomic"

// debugLoggingEnabled guards per-tick debug logs. Set once from main.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables per-tick bot logging.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if per-tick bot logging is enabled.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
