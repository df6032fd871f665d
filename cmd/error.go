package cmd

import (
	"errors"
	"strings"
)

// MultiError collects the failures of a batch of inputs.
type MultiError []error

func (m MultiError) Error() string {
	var b strings.Builder
	b.WriteString("multiple errors:")
	for _, err := range m {
		b.WriteString("\n- " + err.Error())
	}
	return b.String()
}

// Unwrap lets errors.Is and errors.As see every collected error.
func (m MultiError) Unwrap() []error {
	return m
}

// ErrOrNil returns nil for an empty MultiError and the error itself when
// it holds exactly one.
func (m MultiError) ErrOrNil() error {
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	default:
		return m
	}
}

var ErrUsage = errors.New("usage")
