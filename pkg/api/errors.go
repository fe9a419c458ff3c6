package api

import (
	"fmt"
)

// ParseError indicates that a response from the cluster did not match the
// expected grammar. A partial topology is worse than an explicit error for a
// control-plane client, so parsers fail on the first malformed line rather
// than skipping it.
type ParseError struct {
	Line string // the offending line, if any
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("parse error at %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ResolutionError indicates that a hostname could not be resolved to a
// numeric address. Operations which need addresses (e.g. join) abort rather
// than proceed with an unresolved name.
type ResolutionError struct {
	Host string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %q: %v", e.Host, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
