// Package faults provides structured exceptions with scoped handler chains.
//
// This package pairs a structured exception value (nature, durability, origin
// location, context annotations, captured stack) with a per-goroutine chain of
// handler callbacks that decides, at the point an exception is raised, whether
// it becomes a panic, is logged, or is handed back to the raiser as an error.
// Enclosing code installs an override for the duration of a scope; the prior
// policy is restored when the scope pops.
//
// # Features
//
//   - Structured exception values with a fixed nature/durability taxonomy
//   - Context annotations accumulated as an exception propagates outward
//   - Raw call-stack capture at construction (up to 16 frames)
//   - Canonical text rendering shared by stringification and logging
//   - Per-goroutine, LIFO-disciplined callback chains for local policy
//   - A process-wide root callback enacting the default panic/log policy
//   - JSON serialization for diagnostics
//
// # Design Principles
//
//   - Standard library compatibility (Exception implements error; errors.As
//     finds exceptions through Fault panics converted to errors)
//   - Immutability (exceptions deep-copy; copies never alias)
//   - Chain-of-responsibility dispatch (overrides intercept a subset of
//     operations and forward the rest)
//   - Loud misuse detection (scope discipline violations panic)
//
// # Quick Start
//
// Raising an exception:
//
//	exc := faults.NewHere(faults.NatureOSError, faults.DurabilityTemporary, "disk full")
//	if err := faults.RaiseRecoverable(exc); err != nil {
//	    return err // an installed override chose to return it
//	}
//
// Annotating while propagating:
//
//	exc.WrapContext("server.go", 120, "while handling request")
//
// Installing a scoped override:
//
//	type quiet struct{ faults.CallbackBase }
//
//	func (q *quiet) OnRecoverableException(e *faults.Exception) error {
//	    return e // hand the exception back to the raiser as an error
//	}
//
//	scope := faults.Install(&quiet{})
//	defer scope.Pop()
//
// Catching a fault:
//
//	exc := faults.Catch(func() {
//	    riskyOperation()
//	})
//	if exc != nil {
//	    log.Printf("operation failed: %s", exc)
//	}
//
// # Nature and Durability
//
// Every exception carries exactly one nature and one durability:
//
//   - Natures: NatureRequirementNotMet, NatureBugInCode, NatureOSError,
//     NatureNetworkFailure, NatureUnclassified
//   - Durabilities: DurabilityTemporary (retry may help), DurabilityPermanent
//
// Use Durability.IsTemporary to make retry decisions. There is no open-ended
// code registry; free-text descriptions carry everything else.
//
// # Callback Chains
//
// Each goroutine has its own chain of callbacks ending at the process-wide
// root. Install pushes a callback for the calling goroutine; Scope.Pop
// restores the previous one. Chains obey strict stack discipline: pops must
// mirror installs, on the same goroutine, in reverse order; anything else
// panics immediately rather than corrupting the chain.
//
// Callbacks that only care about some operations embed CallbackBase, which
// forwards everything to the next handler in the chain.
//
// # Root Policy
//
// The root converts raised exceptions into *Fault panics, except when the
// goroutine is already unwinding a fault (panicking again would discard the
// first fault) or when SetFaultMode(FaultModeLog) selected the log-only mode;
// in those cases the exception is rendered and written to standard error.
// Log output always re-enters the active chain so installed overrides observe
// it even when the root downgraded a raise to a log line.
//
// # Rendering
//
// String produces the canonical multi-line rendering: one line per context
// annotation (most recent first), the origin line with nature, durability and
// description, then the captured stack as space-separated frame addresses.
// The logging path emits the identical nature/durability/description/stack
// text; it drops the context lines and passes the origin location as
// LogMessage parameters.
package faults
