package resp

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Append appends the RESP2 encoding of v to dst.
func Append(dst []byte, v Value) ([]byte, error) {
	switch v := v.(type) {
	case SimpleString:
		return appendSimple(dst, TypeSimple, v.Value)
	case SimpleError:
		return appendSimple(dst, TypeError, v.Message)
	case Integer:
		dst = strconv.AppendInt(append(dst, TypeInteger), v.Value, 10)
		return append(dst, CRLF...), nil
	case BulkString:
		dst = appendHeader(dst, TypeBlob, len(v.Value))
		dst = append(dst, v.Value...)
		return append(dst, CRLF...), nil
	case Array:
		dst = appendHeader(dst, TypeArray, len(v.Elements))
		var err error
		for _, elem := range v.Elements {
			if dst, err = Append(dst, elem); err != nil {
				return nil, err
			}
		}
		return dst, nil
	case Null:
		kind := TypeBlob
		if v.Kind == TypeArray {
			kind = TypeArray
		}
		return appendHeader(dst, kind, -1), nil
	case Stub:
		return nil, ErrUnfilledStub
	default:
		return nil, ErrUnknownType
	}
}

// Encode writes the RESP2 encoding of v to w.
func Encode(w io.Writer, v Value) error {
	b, err := Append(nil, v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func appendSimple(dst []byte, prefix byte, s string) ([]byte, error) {
	if strings.ContainsAny(s, "\r\n") {
		return nil, ErrInvalidSimple
	}
	dst = append(dst, prefix)
	dst = append(dst, s...)
	return append(dst, CRLF...), nil
}

func appendHeader(dst []byte, prefix byte, n int) []byte {
	dst = strconv.AppendInt(append(dst, prefix), int64(n), 10)
	return append(dst, CRLF...)
}

// Command encodes a command and its arguments as an array of bulk
// strings, the way clients send requests.
func Command(command string, arguments ...string) []byte {
	var buf bytes.Buffer

	// Array with totalArgs elements
	fmt.Fprintf(&buf, "*%d%s", len(arguments)+1, CRLF)

	for _, arg := range append([]string{command}, arguments...) {
		fmt.Fprintf(&buf, "$%d%s%s%s", len(arg), CRLF, arg, CRLF)
	}

	return buf.Bytes()
}
