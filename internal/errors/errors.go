// Package errors defines sentinel errors used across multiple packages.
package errors

import "errors"

// ErrProgressEmpty is returned by the line renderer when the progress tree has no
// tasks and the renderer was not asked to keep running. It is a normal stop signal,
// callers should test for it with errors.Is and not report it as a failure.
var ErrProgressEmpty = errors.New("stop as progress is empty")

// ErrNotATerminal is returned when the dashboard is started on an output that is not an interactive terminal.
var ErrNotATerminal = errors.New("output is not a terminal")
