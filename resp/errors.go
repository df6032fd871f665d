package resp

import "errors"

var (
	ErrInvalidFirstChar = errors.New("resp: invalid first char")
	ErrInvalidNumber    = errors.New("resp: invalid number")
	ErrInvalidLength    = errors.New("resp: invalid length")
	ErrIncomplete       = errors.New("resp: incomplete frame")
	ErrLengthOutOfRange = errors.New("resp: length out of range")
	ErrMaxDepth         = errors.New("resp: max nesting depth exceeded")
	ErrBulkLength       = errors.New("resp: bulk payload length mismatch")

	ErrInvalidSimple = errors.New("resp: simple string contains CR or LF")
	ErrUnfilledStub  = errors.New("resp: cannot encode unfilled stub")
	ErrUnknownType   = errors.New("resp: unknown value type")
)
