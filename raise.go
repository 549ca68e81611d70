package faults

import stderrors "errors"

// RaiseRecoverable hands the exception to the calling goroutine's active
// callback as a recoverable condition. Under the default root policy this
// panics with a *Fault; an installed override may instead log it, suppress
// it, or return it here as an ordinary error for the raise site to handle.
//
// Example:
//
//	exc := faults.NewHere(faults.NatureNetworkFailure, faults.DurabilityTemporary,
//	    "connection reset")
//	if err := faults.RaiseRecoverable(exc); err != nil {
//	    return err
//	}
func RaiseRecoverable(e *Exception) error {
	return Active().OnRecoverableException(e)
}

// RaiseFatal hands the exception to the calling goroutine's active callback
// as a condition after which continuing is unsafe. Under the default root
// policy this always panics with a *Fault.
func RaiseFatal(e *Exception) error {
	return Active().OnFatalException(e)
}

// Log emits one line of diagnostic text through the calling goroutine's
// active callback. contextDepth indicates nesting; the root renders it as a
// run of underscore markers.
func Log(file string, line int, contextDepth int, text string) {
	Active().LogMessage(file, line, contextDepth, text)
}

// AsException extracts the *Exception from an error chain. It finds
// exceptions returned directly, wrapped by other errors, or carried inside a
// recovered *Fault.
//
// Example:
//
//	if exc, ok := faults.AsException(err); ok && exc.Durability().IsTemporary() {
//	    // retry
//	}
func AsException(err error) (*Exception, bool) {
	var exc *Exception
	if stderrors.As(err, &exc) {
		return exc, true
	}
	return nil, false
}
