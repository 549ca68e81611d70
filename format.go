package faults

import (
	"fmt"
	"strings"
)

// String renders the exception's canonical multi-line text:
//
//	<file>:<line>: context: <description>\n   (one per annotation, newest first)
//	<file>:<line>: <nature>[ (temporary)][: <description>]
//	stack: <addr> <addr> ...
//
// This rendering is the single observable contract for diagnostics. The
// logging path emits the identical nature/durability/description/stack text;
// it drops the context lines and carries the origin location as LogMessage
// parameters instead of in the text.
func (e *Exception) String() string {
	var b strings.Builder
	for c := e.context; c != nil; c = c.next {
		fmt.Fprintf(&b, "%s:%d: context: %s\n", c.file, c.line, c.description)
	}
	fmt.Fprintf(&b, "%s:%d: ", e.file, e.line)
	e.writeBody(&b)
	return b.String()
}

// logText is the logging form of the rendering: nature, durability marker,
// description and stack. Context lines are omitted because intervening
// callbacks are expected to have folded context into the description, and the
// origin location is passed alongside rather than printed.
func (e *Exception) logText() string {
	var b strings.Builder
	e.writeBody(&b)
	return b.String()
}

// writeBody writes the nature line tail and the stack section shared by both
// rendering paths.
func (e *Exception) writeBody(b *strings.Builder) {
	b.WriteString(e.nature.String())
	if e.durability == DurabilityTemporary {
		b.WriteString(" (temporary)")
	}
	if e.description != "" {
		b.WriteString(": ")
		b.WriteString(e.description)
	}
	b.WriteString("\nstack: ")
	for i, pc := range e.trace[:e.traceCount] {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(b, "0x%x", pc)
	}
}
