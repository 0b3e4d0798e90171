// Package logging provides a unified logging interface for bigcalc.
// Components log through the Logger interface so the CLI can route output to
// zerolog (structured, leveled) or to a plain log.Logger without the arithmetic
// packages knowing which backend is in use.
package logging
