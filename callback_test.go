package faults_test

import (
	"testing"

	"github.com/jmgilman/go/faults"
	"github.com/stretchr/testify/require"
)

// capturingCallback intercepts all three operations, returning recoverable
// and fatal exceptions to the raise site and recording log lines. It never
// forwards.
type capturingCallback struct {
	faults.CallbackBase

	recovered []*faults.Exception
	fatal     []*faults.Exception
	logged    []logLine
}

type logLine struct {
	file  string
	line  int
	depth int
	text  string
}

func (c *capturingCallback) OnRecoverableException(e *faults.Exception) error {
	c.recovered = append(c.recovered, e)
	return e
}

func (c *capturingCallback) OnFatalException(e *faults.Exception) error {
	c.fatal = append(c.fatal, e)
	return e
}

func (c *capturingCallback) LogMessage(file string, line int, contextDepth int, text string) {
	c.logged = append(c.logged, logLine{file: file, line: line, depth: contextDepth, text: text})
}

// forwardingCallback overrides nothing: every operation falls through to the
// next callback via CallbackBase.
type forwardingCallback struct {
	faults.CallbackBase
}

func TestInstall_OverrideInterceptsRaise(t *testing.T) {
	cb := &capturingCallback{}
	scope := faults.Install(cb)
	defer scope.Pop()

	exc := faults.New(faults.NatureOSError, faults.DurabilityTemporary, "io.go", 9, "disk full")
	err := faults.RaiseRecoverable(exc)

	require.Equal(t, error(exc), err)
	require.Len(t, cb.recovered, 1)
	require.Same(t, exc, cb.recovered[0])
}

func TestInstall_Fatal(t *testing.T) {
	cb := &capturingCallback{}
	scope := faults.Install(cb)
	defer scope.Pop()

	exc := faults.New(faults.NatureBugInCode, faults.DurabilityPermanent, "f.c", 10, "bad state")
	err := faults.RaiseFatal(exc)

	require.Equal(t, error(exc), err)
	require.Len(t, cb.fatal, 1)
}

func TestInstall_LogMessageRouting(t *testing.T) {
	cb := &capturingCallback{}
	scope := faults.Install(cb)
	defer scope.Pop()

	faults.Log("svc.go", 12, 2, "retrying\n")

	require.Len(t, cb.logged, 1)
	require.Equal(t, logLine{file: "svc.go", line: 12, depth: 2, text: "retrying\n"}, cb.logged[0])
}

func TestInstall_InnerSeesRaiseBeforeOuter(t *testing.T) {
	outer := &capturingCallback{}
	outerScope := faults.Install(outer)
	defer outerScope.Pop()

	inner := &capturingCallback{}
	innerScope := faults.Install(inner)

	exc := faults.New(faults.NatureUnclassified, faults.DurabilityPermanent, "a.go", 1, "boom")
	_ = faults.RaiseRecoverable(exc)

	// The inner override intercepted without forwarding; the outer callback
	// must not have seen anything.
	require.Len(t, inner.recovered, 1)
	require.Empty(t, outer.recovered)

	// Popping the inner scope restores the outer callback exactly.
	innerScope.Pop()
	_ = faults.RaiseRecoverable(exc)
	require.Len(t, inner.recovered, 1)
	require.Len(t, outer.recovered, 1)
}

func TestCallbackBase_ForwardsUntouchedOperations(t *testing.T) {
	outer := &capturingCallback{}
	outerScope := faults.Install(outer)
	defer outerScope.Pop()

	innerScope := faults.Install(&forwardingCallback{})
	defer innerScope.Pop()

	exc := faults.New(faults.NatureNetworkFailure, faults.DurabilityTemporary, "net.go", 3, "reset")
	err := faults.RaiseRecoverable(exc)
	faults.Log("net.go", 4, 0, "note\n")

	require.Equal(t, error(exc), err)
	require.Len(t, outer.recovered, 1)
	require.Len(t, outer.logged, 1)
}

func TestActive_DefaultsToRoot(t *testing.T) {
	// No override installed on this goroutine: Active returns the shared
	// root terminator.
	cb := faults.Active()
	require.NotNil(t, cb)

	// The root is a singleton.
	require.Equal(t, cb, faults.Active())
}

func TestInstall_NilCallbackPanics(t *testing.T) {
	require.Panics(t, func() {
		faults.Install(nil)
	})
}

func TestScope_DoublePopPanics(t *testing.T) {
	scope := faults.Install(&forwardingCallback{})
	scope.Pop()

	require.Panics(t, func() {
		scope.Pop()
	})
}

func TestScope_OutOfOrderPopPanics(t *testing.T) {
	s1 := faults.Install(&forwardingCallback{})
	s2 := faults.Install(&forwardingCallback{})

	require.Panics(t, func() {
		s1.Pop()
	})

	s2.Pop()
	s1.Pop()
}

func TestScope_CrossGoroutinePopPanics(t *testing.T) {
	scope := faults.Install(&forwardingCallback{})
	defer scope.Pop()

	recovered := make(chan interface{}, 1)
	go func() {
		defer func() { recovered <- recover() }()
		scope.Pop()
	}()

	require.NotNil(t, <-recovered)
}

func TestChains_PerGoroutineIsolation(t *testing.T) {
	cb := &capturingCallback{}
	scope := faults.Install(cb)
	defer scope.Pop()

	// A different goroutine never sees this goroutine's override.
	other := make(chan faults.Callback, 1)
	go func() {
		other <- faults.Active()
	}()

	require.NotEqual(t, faults.Callback(cb), <-other)
	require.Equal(t, faults.Callback(cb), faults.Active())
}

func TestCallbackBase_UseBeforeInstallPanics(t *testing.T) {
	cb := &forwardingCallback{}
	exc := faults.New(faults.NatureUnclassified, faults.DurabilityPermanent, "a.go", 1, "boom")

	require.Panics(t, func() {
		_ = cb.OnRecoverableException(exc)
	})
}
