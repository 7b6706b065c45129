// Package log provides the logging abstraction used by phonedata.
//
// The phonedata library never writes to stderr on its own. Callers that want
// load diagnostics pass a Logger:
//
//	db, err := phonedata.Load("phone.dat",
//	    phonedata.WithLogger(log.NewZerologAdapter(zl)))
//
// NewNoopLogger discards everything and is the default.
package log
