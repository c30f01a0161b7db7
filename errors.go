package cpp

import "errors"

// Sentinel errors for the handful of failure modes spec §7 calls out
// as distinct kinds rather than ad hoc strings, so callers can
// errors.Is against them.
var (
	// ErrDanglingPaste is returned when `##` opens or closes a
	// function-like macro body with no operand on one side.
	ErrDanglingPaste = errors.New("dangling '##' in macro body")

	// ErrStringizeNotParam is returned when `#` is not immediately
	// followed by a macro parameter name.
	ErrStringizeNotParam = errors.New("'#' not followed by a macro parameter")

	// ErrExpansionTooDeep is returned when macro expansion recurses
	// past maxExpansionDepth (spec §5's required recursion bound).
	ErrExpansionTooDeep = errors.New("macro expansion nested too deeply")
)
