package resp

import (
	"bytes"
	"fmt"
	"math"
)

// Limits bounds the frames a Decoder accepts.
type Limits struct {
	// MaxDepth is how many arrays may be nested inside each other.
	MaxDepth int
	// MaxArrayLen and MaxBulkLen bound declared lengths.
	MaxArrayLen int
	MaxBulkLen  int
	// StrictBulkLength rejects bulk payloads whose length differs from
	// the declared one. Off by default: the payload is the next line.
	StrictBulkLength bool
}

func DefaultLimits() Limits {
	return Limits{
		MaxDepth:    128,
		MaxArrayLen: math.MaxInt32,
		MaxBulkLen:  512 << 20,
	}
}

// Decoder decodes RESP frames from complete buffers. It holds no state
// besides its limits and is safe for concurrent use.
type Decoder struct {
	limits Limits
}

// NewDecoder returns a Decoder. Zero limits fall back to DefaultLimits.
func NewDecoder(limits Limits) *Decoder {
	def := DefaultLimits()
	if limits.MaxDepth <= 0 {
		limits.MaxDepth = def.MaxDepth
	}
	if limits.MaxArrayLen <= 0 {
		limits.MaxArrayLen = def.MaxArrayLen
	}
	if limits.MaxBulkLen <= 0 {
		limits.MaxBulkLen = def.MaxBulkLen
	}
	return &Decoder{limits: limits}
}

func (d *Decoder) Limits() Limits {
	return d.limits
}

var defaultDecoder = NewDecoder(DefaultLimits())

// Decode decodes the first frame in buf with the default limits.
func Decode(buf []byte) (Value, error) {
	return defaultDecoder.Decode(buf)
}

// Decode decodes the first frame in buf. Bytes after the frame are
// ignored. A buffer without any CRLF is decoded as a single line, so
// bare scalars like ":1" are accepted.
func (d *Decoder) Decode(buf []byte) (Value, error) {
	if len(buf) == 0 {
		return nil, ErrIncomplete
	}
	line, rest, _ := bytes.Cut(buf, crlf)
	return d.decodeFrame(line, rest, 0)
}

// DecodeNext decodes the first frame in buf and returns the bytes that
// follow it.
func (d *Decoder) DecodeNext(buf []byte) (Value, []byte, error) {
	v, err := d.Decode(buf)
	if err != nil {
		return nil, buf, err
	}
	return v, skipLines(buf, Lines(v)), nil
}

// FrameError reports which frame of a pipelined buffer failed.
type FrameError struct {
	Index  int
	Offset int
	Err    error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d at offset %d: %s", e.Index, e.Offset, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// DecodeAll decodes every frame in buf. On failure it returns the frames
// decoded so far and a *FrameError.
func (d *Decoder) DecodeAll(buf []byte) ([]Value, error) {
	var values []Value
	rest := buf
	for len(rest) > 0 {
		v, next, err := d.DecodeNext(rest)
		if err != nil {
			return values, &FrameError{Index: len(values), Offset: len(buf) - len(rest), Err: err}
		}
		values = append(values, v)
		rest = next
	}
	return values, nil
}

func (d *Decoder) decodeFrame(line, rest []byte, depth int) (Value, error) {
	v, err := ParseLine(line)
	if err != nil {
		return nil, err
	}

	stub, ok := v.(Stub)
	if !ok {
		// scalars and nulls use only their own line
		return v, nil
	}
	if stub.Kind == TypeBlob {
		return d.fillBulk(stub, rest)
	}
	return d.fillArray(stub, rest, depth)
}

func (d *Decoder) fillBulk(stub Stub, rest []byte) (Value, error) {
	if stub.Len > d.limits.MaxBulkLen {
		return nil, ErrLengthOutOfRange
	}
	payload, _, ok := bytes.Cut(rest, crlf)
	if !ok {
		return nil, ErrIncomplete
	}
	if d.limits.StrictBulkLength && len(payload) != stub.Len {
		return nil, ErrBulkLength
	}
	return BulkString{Value: append([]byte{}, payload...)}, nil
}

func (d *Decoder) fillArray(stub Stub, rest []byte, depth int) (Value, error) {
	if stub.Len > d.limits.MaxArrayLen {
		return nil, ErrLengthOutOfRange
	}
	if depth >= d.limits.MaxDepth {
		return nil, ErrMaxDepth
	}
	if stub.Len == 0 {
		return Array{Elements: []Value{}}, nil
	}

	current, rest, ok := bytes.Cut(rest, crlf)
	if !ok {
		return nil, ErrIncomplete
	}

	// every element takes at least 3 bytes ("+\r\n")
	size := stub.Len
	if limit := len(rest)/3 + 1; size > limit {
		size = limit
	}
	elements := make([]Value, 0, size)

	for {
		elem, err := d.decodeFrame(current, rest, depth+1)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
		if len(elements) == stub.Len {
			break
		}

		// land on the first line of the next element
		for i := Lines(elem); i > 0; i-- {
			if current, rest, ok = bytes.Cut(rest, crlf); !ok {
				return nil, ErrIncomplete
			}
		}
	}

	return Array{Elements: elements}, nil
}

// skipLines drops n CRLF-terminated lines from buf. A final line without
// CRLF counts as a line.
func skipLines(buf []byte, n int) []byte {
	for ; n > 0; n-- {
		_, after, ok := bytes.Cut(buf, crlf)
		if !ok {
			return nil
		}
		buf = after
	}
	return buf
}
