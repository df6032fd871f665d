package resp

import (
	"bytes"
	"strconv"
)

// ParseLine builds a value from one line without its trailing CRLF.
//
//	"+OK" -> SimpleString{"OK"}
//	"$5"  -> Stub{Kind: '$', Len: 5}
//	"*-1" -> Null{Kind: '*'}
func ParseLine(line []byte) (Value, error) {
	if len(line) == 0 {
		return nil, ErrInvalidFirstChar
	}
	arg := line[1:]

	switch line[0] {
	case TypeSimple:
		return SimpleString{Value: string(arg)}, nil
	case TypeError:
		return SimpleError{Message: string(arg)}, nil
	case TypeInteger:
		n, err := strconv.ParseInt(string(arg), 10, 64)
		if err != nil {
			return nil, ErrInvalidNumber
		}
		return Integer{Value: n}, nil
	case TypeBlob, TypeArray:
		if bytes.Equal(arg, []byte("-1")) {
			return Null{Kind: line[0]}, nil
		}
		n, err := parseLength(arg)
		if err != nil {
			return nil, err
		}
		return Stub{Kind: line[0], Len: n}, nil
	default:
		return nil, ErrInvalidFirstChar
	}
}

// parseLength accepts decimal digits only; signs are rejected.
func parseLength(arg []byte) (int, error) {
	if len(arg) == 0 {
		return 0, ErrInvalidLength
	}
	for _, c := range arg {
		if c < '0' || c > '9' {
			return 0, ErrInvalidLength
		}
	}
	n, err := strconv.ParseInt(string(arg), 10, 64)
	if err != nil || n > int64(maxInt) {
		return 0, ErrLengthOutOfRange
	}
	return int(n), nil
}

const maxInt = int(^uint(0) >> 1)

// IsNull reports whether v is a null bulk string or array. Empty but
// present aggregates are not null.
func IsNull(v Value) bool {
	switch v := v.(type) {
	case Null:
		return true
	case Stub:
		return v.Len < 0
	default:
		return false
	}
}
