package faults

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// FaultMode selects what the root callback does with an exception nobody
// intercepted.
type FaultMode int32

const (
	// FaultModePanic converts raised exceptions into *Fault panics. This is
	// the default.
	FaultModePanic FaultMode = iota

	// FaultModeLog never panics: every raised exception is rendered and
	// written to standard error instead. The process-wide analog of building
	// with exceptions disabled.
	FaultModeLog
)

var faultMode atomic.Int32

// SetFaultMode selects the root policy for the whole process. Intended to be
// called once at startup; it is safe, if confusing, to change later.
func SetFaultMode(m FaultMode) {
	faultMode.Store(int32(m))
}

// CurrentFaultMode returns the root policy in effect.
func CurrentFaultMode() FaultMode {
	return FaultMode(faultMode.Load())
}

// Fault is the panic payload the root uses to convert a raised exception
// into an unwinding fault. It implements error so recovered faults compose
// with ordinary error handling, and Unwrap so errors.As finds the Exception.
type Fault struct {
	Exception *Exception
}

// Error returns the wrapped exception's canonical rendering.
func (f *Fault) Error() string {
	return f.Exception.String()
}

// Unwrap returns the wrapped exception.
func (f *Fault) Unwrap() error {
	return f.Exception
}

// Catch runs fn and intercepts a *Fault panic raised through the callback
// chain, returning its Exception. It returns nil if fn completes normally.
// Panics that are not faults propagate untouched.
//
// Catch is the consumer-side pairing of the root's panic policy: on recovery
// it restores the goroutine's unwind state to what it was on entry, so
// exceptions raised after Catch returns are converted to faults again, even
// when further fatals superseded the first fault while it unwound. Recovering
// a *Fault with a bare recover() instead of Catch leaves the goroutine marked
// as unwinding, and later raises on it are logged rather than converted.
func Catch(fn func()) (exc *Exception) {
	depth := unwindDepth()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		f, ok := r.(*Fault)
		if !ok {
			panic(r)
		}
		setUnwindDepth(depth)
		exc = f.Exception
	}()
	fn()
	return nil
}

// stderr is the raw byte sink for root log output. Swapped in tests.
var stderr io.Writer = os.Stderr

var (
	rootOnce sync.Once
	rootCB   *rootCallback
)

// root returns the process-wide chain terminator, constructed on first use
// and shared by every goroutine that never installed an override.
func root() Callback {
	rootOnce.Do(func() {
		rootCB = &rootCallback{}
	})
	return rootCB
}

// rootCallback enacts the default policy. It terminates the chain: none of
// its operations forward.
type rootCallback struct{}

// OnRecoverableException converts the exception to a *Fault panic unless the
// goroutine is already unwinding one of our faults (a second panic would
// discard the first) or FaultModeLog is in effect; then it logs instead.
func (r *rootCallback) OnRecoverableException(e *Exception) error {
	if CurrentFaultMode() == FaultModeLog || isUnwinding() {
		r.logException(e)
		return nil
	}
	markUnwinding()
	panic(&Fault{Exception: e})
}

// OnFatalException always converts to a *Fault panic; continuing after a
// fatal exception is unsafe. In FaultModeLog it logs, like recoverable.
func (r *rootCallback) OnFatalException(e *Exception) error {
	if CurrentFaultMode() == FaultModeLog {
		r.logException(e)
		return nil
	}
	markUnwinding()
	panic(&Fault{Exception: e})
}

// LogMessage prefixes the text with contextDepth underscores and writes it to
// standard error as raw bytes. Write failures are swallowed: raising a new
// exception from the logging path would risk infinite recursion.
func (r *rootCallback) LogMessage(file string, line int, contextDepth int, text string) {
	if contextDepth > 0 {
		text = strings.Repeat("_", contextDepth) + text
	}
	writeAll(stderr, []byte(text))
}

// logException renders the exception in its logging form and re-enters
// through the goroutine's active callback rather than logging directly, so
// installed overrides still observe the line even when the root itself
// downgraded a raise to a log.
func (r *rootCallback) logException(e *Exception) {
	Active().LogMessage(e.file, e.line, 0, e.logText())
}

// writeAll writes b, looping while the writer makes progress. If a write
// consumes nothing the rest of the message is silently dropped; the stream
// is broken and there is nobody left to tell.
func writeAll(w io.Writer, b []byte) {
	for len(b) > 0 {
		n, _ := w.Write(b)
		if n <= 0 {
			return
		}
		b = b[n:]
	}
}
