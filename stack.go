package faults

import "runtime"

// maxTraceFrames bounds the number of frames captured per exception.
// The buffer lives inline in the Exception value, so the bound also caps the
// cost of copying one.
const maxTraceFrames = 16

// captureTrace fills buf with up to maxTraceFrames raw program counters,
// skipping 'skip' frames above captureTrace itself, and returns the count.
//
// Frames are kept as opaque addresses: symbolization is a consumer concern
// (runtime.CallersFrames resolves them when needed) and the rendering
// contract only requires the raw values.
func captureTrace(buf *[maxTraceFrames]uintptr, skip int) int {
	// +2 skips runtime.Callers and captureTrace, so the first recorded frame
	// is the caller's caller when skip is 0.
	return runtime.Callers(skip+2, buf[:])
}
