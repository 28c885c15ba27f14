package xslt

import "errors"

var (
	// ErrStylesheetUnavailable is returned when the stylesheet file cannot
	// be read.
	ErrStylesheetUnavailable = errors.New("stylesheet is not readable")

	// ErrProcessorUnavailable is returned when the xsltproc executable
	// cannot be found.
	ErrProcessorUnavailable = errors.New("xsltproc is not available")

	// ErrEmptyOutput is returned when the stylesheet produced no document.
	ErrEmptyOutput = errors.New("stylesheet produced no output")
)
