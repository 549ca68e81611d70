package faults

// Nature classifies what kind of failure an exception represents.
// The set is closed: finer distinctions belong in the free-text description,
// not in new enumerators.
type Nature int

const (
	// NatureRequirementNotMet indicates a caller-supplied precondition was violated.
	NatureRequirementNotMet Nature = iota

	// NatureBugInCode indicates an internal invariant failed; the fault is in
	// this process's own logic, not its inputs.
	NatureBugInCode

	// NatureOSError indicates an operating system call failed.
	NatureOSError

	// NatureNetworkFailure indicates a network operation failed.
	NatureNetworkFailure

	// NatureUnclassified indicates a failure that fits none of the above.
	NatureUnclassified
)

// natureStrings is the display table for Nature, indexed by ordinal.
// The texts are part of the rendering contract; do not reorder.
var natureStrings = [...]string{
	"requirement not met",
	"bug in code",
	"error from OS",
	"network failure",
	"error",
}

// String returns the display text for the nature.
// Panics on an out-of-range ordinal; constructing one is a programmer error.
func (n Nature) String() string {
	return natureStrings[n]
}

// Durability indicates whether a failure may succeed if retried.
// This is used by enclosing code to decide between retry and giving up.
type Durability int

const (
	// DurabilityTemporary indicates the condition may not recur on retry.
	// Examples: network timeouts, resource exhaustion, transient OS errors.
	DurabilityTemporary Durability = iota

	// DurabilityPermanent indicates retrying will not help.
	// Examples: violated preconditions, logic bugs, malformed input.
	DurabilityPermanent
)

// durabilityStrings is the display table for Durability, indexed by ordinal.
var durabilityStrings = [...]string{
	"temporary",
	"permanent",
}

// String returns the display text for the durability.
// Panics on an out-of-range ordinal; constructing one is a programmer error.
func (d Durability) String() string {
	return durabilityStrings[d]
}

// IsTemporary returns true if the durability indicates retry may be attempted.
func (d Durability) IsTemporary() bool {
	return d == DurabilityTemporary
}
