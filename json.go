package faults

import (
	"encoding/json"
	"fmt"
)

// ExceptionReport is the flat JSON structure for an exception in diagnostic
// output. It carries the same fields as the text rendering; the text form
// remains the canonical contract, this is a convenience for structured sinks.
type ExceptionReport struct {
	// Nature is the display text of the failure classification.
	Nature string `json:"nature"`

	// Durability is "temporary" or "permanent".
	Durability string `json:"durability"`

	// File and Line locate where the exception was raised.
	File string `json:"file"`
	Line int    `json:"line"`

	// Description is the free-text description. Omitted when empty.
	Description string `json:"description,omitempty"`

	// Context lists the annotations, most recently attached first.
	// Omitted when no context was attached.
	Context []ContextReport `json:"context,omitempty"`

	// Stack holds the captured frame addresses rendered in hex, in capture
	// order, matching the text rendering.
	Stack []string `json:"stack,omitempty"`
}

// ContextReport is one context annotation in an ExceptionReport.
type ContextReport struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Description string `json:"description"`
}

// ToJSON converts any error carrying an exception into an ExceptionReport.
// Returns nil if err is nil or no *Exception is found in its chain (including
// through a recovered *Fault).
//
// Example:
//
//	if report := faults.ToJSON(err); report != nil {
//	    enc.Encode(report)
//	}
func ToJSON(err error) *ExceptionReport {
	if err == nil {
		return nil
	}
	exc, ok := AsException(err)
	if !ok {
		return nil
	}
	return exc.report()
}

// report builds the serializable view of the exception.
func (e *Exception) report() *ExceptionReport {
	var ctx []ContextReport
	for c := e.context; c != nil; c = c.next {
		ctx = append(ctx, ContextReport{
			File:        c.file,
			Line:        c.line,
			Description: c.description,
		})
	}

	var stack []string
	for _, pc := range e.trace[:e.traceCount] {
		stack = append(stack, fmt.Sprintf("0x%x", pc))
	}

	return &ExceptionReport{
		Nature:      e.nature.String(),
		Durability:  e.durability.String(),
		File:        e.file,
		Line:        e.line,
		Description: e.description,
		Context:     ctx,
		Stack:       stack,
	}
}

// MarshalJSON implements json.Marshaler so exceptions embed directly in
// structured diagnostic output.
//
// Example:
//
//	exc := faults.New(faults.NatureOSError, faults.DurabilityTemporary, "io.go", 7, "disk full")
//	data, _ := json.Marshal(exc)
func (e *Exception) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.report())
}
