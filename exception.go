package faults

import "runtime"

// Exception is a structured failure value: what went wrong (nature), whether
// retrying may help (durability), where it was raised (file, line), a
// free-text description, the context annotations accumulated while
// propagating, and the call stack captured at construction.
//
// Exceptions have value semantics: Copy produces a fully independent value,
// and nothing is shared between two independently owned exceptions. Apart
// from WrapContext, an exception never changes after construction.
type Exception struct {
	nature      Nature
	durability  Durability
	file        string
	line        int
	description string
	context     *Context
	trace       [maxTraceFrames]uintptr
	traceCount  int
}

// New creates an exception raised at the given file and line, capturing up to
// 16 raw stack-frame addresses from the calling goroutine. It never fails.
//
// Example:
//
//	exc := faults.New(faults.NatureNetworkFailure, faults.DurabilityTemporary,
//	    "dial.go", 42, "connection refused")
func New(nature Nature, durability Durability, file string, line int, description string) *Exception {
	e := &Exception{
		nature:      nature,
		durability:  durability,
		file:        file,
		line:        line,
		description: description,
	}
	e.traceCount = captureTrace(&e.trace, 1)
	return e
}

// NewHere is New with the file and line filled in from the caller.
//
// Example:
//
//	exc := faults.NewHere(faults.NatureOSError, faults.DurabilityTemporary, "disk full")
func NewHere(nature Nature, durability Durability, description string) *Exception {
	file, line := "??", 0
	if _, f, l, ok := runtime.Caller(1); ok {
		file, line = f, l
	}
	e := &Exception{
		nature:      nature,
		durability:  durability,
		file:        file,
		line:        line,
		description: description,
	}
	e.traceCount = captureTrace(&e.trace, 1)
	return e
}

// Nature returns the failure classification.
func (e *Exception) Nature() Nature { return e.nature }

// Durability returns whether retrying may help.
func (e *Exception) Durability() Durability { return e.durability }

// File returns the file where the exception was raised.
func (e *Exception) File() string { return e.file }

// Line returns the line where the exception was raised.
func (e *Exception) Line() int { return e.line }

// Description returns the free-text description. May be empty.
func (e *Exception) Description() string { return e.description }

// Context returns the most recently attached context annotation, or nil if
// none has been attached. Callers must treat the chain as read-only.
func (e *Exception) Context() *Context { return e.context }

// StackTrace returns a copy of the raw frame addresses captured when the
// exception was constructed, in capture order.
func (e *Exception) StackTrace() []uintptr {
	return append([]uintptr(nil), e.trace[:e.traceCount]...)
}

// WrapContext prepends a context annotation recording what the enclosing code
// was doing when the exception passed through. The new annotation becomes the
// head of the chain, so the most recent context renders first.
//
// Example:
//
//	if exc := faults.Catch(load); exc != nil {
//	    exc.WrapContext("server.go", 120, "while loading config")
//	    return faults.RaiseRecoverable(exc)
//	}
func (e *Exception) WrapContext(file string, line int, description string) {
	e.context = &Context{
		file:        file,
		line:        line,
		description: description,
		next:        e.context,
	}
}

// Copy returns a fully independent deep copy: the description, every context
// node, and the captured trace are all duplicated. Mutating one copy's
// context chain never affects the other.
func (e *Exception) Copy() *Exception {
	dup := *e
	dup.context = e.context.clone()
	return &dup
}

// Error implements the error interface with the canonical rendering,
// identical to String.
func (e *Exception) Error() string {
	return e.String()
}
