// Package monitoring carries the analyzer's diagnostic logging hook.
package monitoring

import "log"

// Logf is the package-level diagnostic logger for background routines
// (the watch loop, archive writes). It defaults to log.Printf but may be
// replaced by SetLogger; tests mute it to keep output clean.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Mute silences diagnostic logging and returns a restore function,
// intended for use with defer in tests.
func Mute() func() {
	previous := Logf
	SetLogger(nil)
	return func() { Logf = previous }
}
