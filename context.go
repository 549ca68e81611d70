package faults

// Context is one annotation attached to an exception while it propagates:
// where the annotation was added and a human-readable description of what
// the enclosing code was doing.
//
// Nodes form a singly-linked chain owned by the exception. The head is the
// most recently attached annotation; Next walks toward the oldest. Nodes are
// only ever prepended, never relinked, so the chain cannot cycle.
type Context struct {
	file        string
	line        int
	description string
	next        *Context
}

// File returns the file where the annotation was attached.
func (c *Context) File() string { return c.file }

// Line returns the line where the annotation was attached.
func (c *Context) Line() int { return c.line }

// Description returns the annotation text.
func (c *Context) Description() string { return c.description }

// Next returns the annotation attached before this one, or nil at the end
// of the chain.
func (c *Context) Next() *Context { return c.next }

// clone deep-copies the chain starting at c. Each node and its description
// are copied; the result shares nothing with the original.
func (c *Context) clone() *Context {
	if c == nil {
		return nil
	}
	return &Context{
		file:        c.file,
		line:        c.line,
		description: c.description,
		next:        c.next.clone(),
	}
}
