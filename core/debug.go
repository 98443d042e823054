package core

// DebugWriter is a function type for writing debug messages.
type DebugWriter func(string)

var (
	// debugPrintln is the platform debug print function. No-op by
	// default so core code can log unconditionally.
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether Debug output is active. Warnings
	// are always written.
	debugEnabled bool
)

// SetDebugWriter sets the platform-specific debug output function.
// This allows targets to redirect output to UART, USB-serial, etc.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output. Disabled by default
// so debug formatting never affects timing in production builds.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled.
func IsDebugEnabled() bool {
	return debugEnabled
}

// Debug writes a debug message if debug output is enabled.
func Debug(msg string) {
	if debugEnabled {
		debugPrintln(msg)
	}
}

// Warn writes a warning message. Warnings bypass the debug enable flag:
// they report configuration problems (like interrupt slot collisions)
// that the system continues through in a degraded state.
func Warn(msg string) {
	debugPrintln("WARNING: " + msg)
}
