package eventstream

import "log"

// Logger is the injectable sink for operationally-significant messages that
// are logged and swallowed rather than propagated: subscriber-callback
// panics and similar defensive catches.
type Logger func(format string, args ...any)

// defaultLogger wraps the standard logger. Used when a Config does not
// supply one.
func defaultLogger(format string, args ...any) {
	log.Printf(format, args...)
}
