package syscallmd

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedParameter      = errors.New("malformed parameter")
	ErrUnterminatedDeclaration = errors.New("unterminated declaration")
	ErrHeaderNotFound          = errors.New("syscall header not found")
	ErrNoMatches               = errors.New("no syscalls found")
	ErrUnknownArchitecture     = errors.New("unknown architecture")
)

// ParameterError is returned when a parameter's text splits into something
// that is not an identifier. The whole parse is abandoned: skipping the
// parameter would shift every later argument of the call.
type ParameterError struct {
	// Call is the name of the declaration being parsed, without the sys_ prefix.
	Call string
	// Text is the raw parameter text.
	Text string
	// Name is the name the parameter text was split into.
	Name string
	Line int
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("line %d: sys_%s: unable to parse parameter %q: parsed name %q seems invalid", e.Line, e.Call, e.Text, e.Name)
}

func (e *ParameterError) Unwrap() error {
	return ErrMalformedParameter
}

// UnterminatedError is returned when the input ends inside a declaration.
type UnterminatedError struct {
	Call string
	// Line is where the declaration started.
	Line int
	// Pending is the parameter text buffered when the input ended.
	Pending string
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("line %d: sys_%s: reached end of input before closing ')' (pending %q)", e.Line, e.Call, e.Pending)
}

func (e *UnterminatedError) Unwrap() error {
	return ErrUnterminatedDeclaration
}
