package faults

import (
	"runtime"
	"sync"
)

// Callback handles the three error events a goroutine's chain dispatches.
// Each goroutine has its own chain of callbacks ending at the process-wide
// root; the innermost installed callback sees every event first and decides
// whether to act or forward.
type Callback interface {
	// OnRecoverableException signals a condition the raising code can, in
	// principle, continue from. The returned error, if non-nil, is delivered
	// to the raise site; the root always returns nil (it panics or logs).
	OnRecoverableException(e *Exception) error

	// OnFatalException signals a condition after which continuing is unsafe.
	// The root always converts it to a *Fault panic (or logs it in
	// FaultModeLog).
	OnFatalException(e *Exception) error

	// LogMessage emits one line of diagnostic text. contextDepth indicates
	// nesting depth so handlers may indent.
	LogMessage(file string, line int, contextDepth int, text string)
}

// CallbackBase forwards every operation to the next callback in the chain.
// Concrete callbacks embed it and override only the operations they care
// about; Install binds the next handler when the callback is pushed.
type CallbackBase struct {
	next Callback
}

// Next returns the callback this one forwards to. It is only valid after
// Install has pushed the enclosing callback.
func (b *CallbackBase) Next() Callback {
	if b.next == nil {
		panic("faults: callback used before Install bound its next handler")
	}
	return b.next
}

func (b *CallbackBase) setNext(next Callback) { b.next = next }

// OnRecoverableException forwards to the next callback.
func (b *CallbackBase) OnRecoverableException(e *Exception) error {
	return b.Next().OnRecoverableException(e)
}

// OnFatalException forwards to the next callback.
func (b *CallbackBase) OnFatalException(e *Exception) error {
	return b.Next().OnFatalException(e)
}

// LogMessage forwards to the next callback.
func (b *CallbackBase) LogMessage(file string, line int, contextDepth int, text string) {
	b.Next().LogMessage(file, line, contextDepth, text)
}

// nextSetter is implemented by callbacks that embed CallbackBase; Install
// uses it to bind the previously active callback as the forward target.
type nextSetter interface {
	setNext(Callback)
}

// goroutineChain is one goroutine's entry in the registry: its innermost
// installed callback and how many of our faults it is currently unwinding.
type goroutineChain struct {
	active    Callback
	unwinding int
}

var (
	registryMu sync.Mutex
	registry   = map[int64]*goroutineChain{}
)

// goroutineID parses the calling goroutine's id from the first line of its
// stack dump ("goroutine N [running]:"). Only exceptional paths (installing
// a scope, raising, logging) pay for this.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	const prefix = len("goroutine ")
	var id int64
	for _, c := range buf[prefix:n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}

// lookupChain returns the calling goroutine's registry entry, or nil.
func lookupChain(id int64) *goroutineChain {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry[id]
}

// ensureChain returns the calling goroutine's registry entry, creating it
// if absent.
func ensureChain(id int64) *goroutineChain {
	registryMu.Lock()
	defer registryMu.Unlock()
	g := registry[id]
	if g == nil {
		g = &goroutineChain{}
		registry[id] = g
	}
	return g
}

// releaseChain deletes the entry once it holds no state worth keeping.
func releaseChain(id int64, g *goroutineChain) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if g.active == nil && g.unwinding == 0 {
		delete(registry, id)
	}
}

// Active returns the calling goroutine's innermost installed callback, or the
// process-wide root if the goroutine never installed one.
func Active() Callback {
	if g := lookupChain(goroutineID()); g != nil && g.active != nil {
		return g.active
	}
	return root()
}

// noCopy triggers go vet's copylocks check on types that embed it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Scope is the handle for one installed callback. It pins the callback as
// the active one for the installing goroutine until Pop restores the
// previous callback.
//
// Scopes obey strict stack discipline: each Pop must run on the goroutine
// that installed the scope, exactly once, and in reverse installation order.
// Violations panic rather than silently corrupting the chain, which gives
// the same guarantee a stack-allocation check would: a scope cannot outlive
// or escape the extent that created it.
type Scope struct {
	noCopy noCopy

	cb     Callback
	prev   Callback
	gid    int64
	popped bool
}

// Install pushes cb as the active callback for the calling goroutine and
// returns the scope that must be popped to restore the previous one. If cb
// embeds CallbackBase, the previously active callback (or the root) is bound
// as cb's forward target.
//
// The returned scope is typically popped with defer so restoration runs on
// every exit path, including panics:
//
//	scope := faults.Install(cb)
//	defer scope.Pop()
func Install(cb Callback) *Scope {
	if cb == nil {
		panic("faults: Install called with nil callback")
	}
	id := goroutineID()
	g := ensureChain(id)

	registryMu.Lock()
	prev := g.active
	registryMu.Unlock()

	next := prev
	if next == nil {
		next = root()
	}
	if s, ok := cb.(nextSetter); ok {
		s.setNext(next)
	}

	registryMu.Lock()
	g.active = cb
	registryMu.Unlock()

	return &Scope{cb: cb, prev: prev, gid: id}
}

// Pop restores the callback that was active before this scope was installed.
// It panics if the scope was already popped, if it is popped on a different
// goroutine than it was installed on, or if an inner scope is still active.
func (s *Scope) Pop() {
	if s.popped {
		panic("faults: callback scope popped twice")
	}
	id := goroutineID()
	if id != s.gid {
		panic("faults: callback scope popped on a different goroutine than it was installed on")
	}

	registryMu.Lock()
	g := registry[id]
	if g == nil || g.active != s.cb {
		registryMu.Unlock()
		panic("faults: callback scopes must pop in last-in-first-out order")
	}
	g.active = s.prev
	registryMu.Unlock()

	s.popped = true
	releaseChain(id, g)
}

// markUnwinding records that the calling goroutine is about to unwind one of
// our faults. Raises that arrive while the mark is held are logged instead of
// panicking again.
func markUnwinding() {
	g := ensureChain(goroutineID())
	registryMu.Lock()
	g.unwinding++
	registryMu.Unlock()
}

// unwindDepth returns the calling goroutine's current unwind count.
func unwindDepth() int {
	g := lookupChain(goroutineID())
	if g == nil {
		return 0
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	return g.unwinding
}

// setUnwindDepth restores the calling goroutine's unwind count to a snapshot
// taken before a fault started unwinding. Catch uses it after recovering; a
// fatal raised during unwinding marks the goroutine again, so restoring the
// snapshot rather than decrementing keeps the count honest no matter how many
// faults superseded each other before recovery.
func setUnwindDepth(depth int) {
	id := goroutineID()
	g := lookupChain(id)
	if g == nil {
		if depth == 0 {
			return
		}
		g = ensureChain(id)
	}
	registryMu.Lock()
	g.unwinding = depth
	registryMu.Unlock()
	releaseChain(id, g)
}

// isUnwinding reports whether the calling goroutine is between a fault panic
// and its recovery.
func isUnwinding() bool {
	g := lookupChain(goroutineID())
	if g == nil {
		return false
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	return g.unwinding > 0
}
