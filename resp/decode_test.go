package resp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bulk(s string) BulkString {
	return BulkString{Value: []byte(s)}
}

func array(elements ...Value) Array {
	if elements == nil {
		elements = []Value{}
	}
	return Array{Elements: elements}
}

func TestDecodeScalars(t *testing.T) {
	cases := map[string]Value{
		"+OK\r\n":           SimpleString{Value: "OK"},
		"+OK":               SimpleString{Value: "OK"},
		"-ERR reason\r\n":   SimpleError{Message: "ERR reason"},
		":42\r\n":           Integer{Value: 42},
		":-42":              Integer{Value: -42},
		"+trailing\r\n:1":   SimpleString{Value: "trailing"},
		"+with space\r\n":   SimpleString{Value: "with space"},
		"-WRONGTYPE op\r\n": SimpleError{Message: "WRONGTYPE op"},
	}

	for in, want := range cases {
		got, err := Decode([]byte(in))
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestDecodeValidBulk(t *testing.T) {
	got, err := Decode([]byte("$2\r\n22\r\n"))
	require.NoError(t, err)
	assert.Equal(t, bulk("22"), got)
}

func TestDecodeValidBulkString(t *testing.T) {
	cases := map[string]Value{
		"$0\r\n\r\n":             BulkString{Value: []byte{}},
		"$1\r\n1\r\n":            bulk("1"),
		"$1\r\n \r\n":            bulk(" "),
		"$3\r\n\x00\x01\x02\r\n": BulkString{Value: []byte{0, 1, 2}},
	}

	for in, want := range cases {
		got, err := Decode([]byte(in))
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestDecodeNullIsDistinctFromEmpty(t *testing.T) {
	v, err := Decode([]byte("$-1\r\n"))
	require.NoError(t, err)
	assert.Equal(t, Null{Kind: TypeBlob}, v)
	assert.True(t, IsNull(v))

	v, err = Decode([]byte("$0\r\n\r\n"))
	require.NoError(t, err)
	assert.False(t, IsNull(v))

	v, err = Decode([]byte("*-1\r\n"))
	require.NoError(t, err)
	assert.Equal(t, Null{Kind: TypeArray}, v)
	assert.True(t, IsNull(v))

	v, err = Decode([]byte("*0\r\n"))
	require.NoError(t, err)
	assert.Equal(t, array(), v)
	assert.False(t, IsNull(v))
}

func TestDecodeValidArray(t *testing.T) {
	cases := map[string]Value{
		"*0\r\n":                             array(),
		"*0":                                 array(),
		"*1\r\n:1\r\n":                       array(Integer{Value: 1}),
		"*2\r\n:1\r\n:2\r\n":                 array(Integer{Value: 1}, Integer{Value: 2}),
		"*3\r\n:1\r\n:2\r\n$1\r\n0\r\n":      array(Integer{Value: 1}, Integer{Value: 2}, bulk("0")),
		"*3\r\n$1\r\n1\r\n:2\r\n$1\r\n0\r\n": array(bulk("1"), Integer{Value: 2}, bulk("0")),
		"*2\r\n$-1\r\n+OK\r\n":               array(Null{Kind: TypeBlob}, SimpleString{Value: "OK"}),
		"*2\r\n*-1\r\n-ERR\r\n":              array(Null{Kind: TypeArray}, SimpleError{Message: "ERR"}),
	}

	for in, want := range cases {
		got, err := Decode([]byte(in))
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestDecodeValidNestedArray(t *testing.T) {
	cases := map[string]Value{
		"*1\r\n*1\r\n:1\r\n":       array(array(Integer{Value: 1})),
		"*1\r\n*2\r\n:1\r\n:2\r\n": array(array(Integer{Value: 1}, Integer{Value: 2})),
		"*2\r\n*2\r\n:1\r\n:2\r\n$5\r\nhi\r\n": array(
			array(Integer{Value: 1}, Integer{Value: 2}),
			bulk("hi"),
		),
		"*5\r\n*1\r\n:1\r\n:2\r\n$2\r\nhi\r\n*0\r\n*1\r\n*2\r\n$0\r\n\r\n$1\r\n \r\n": array(
			array(Integer{Value: 1}),
			Integer{Value: 2},
			bulk("hi"),
			array(),
			array(array(BulkString{Value: []byte{}}, bulk(" "))),
		),
		"*2\r\n*2\r\n*1\r\n$1\r\na\r\n$-1\r\n+tail\r\n": array(
			array(array(bulk("a")), Null{Kind: TypeBlob}),
			SimpleString{Value: "tail"},
		),
	}

	for in, want := range cases {
		got, err := Decode([]byte(in))
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestDecodeInvalid(t *testing.T) {
	cases := map[string]error{
		"data":                    ErrInvalidFirstChar,
		"\r\n":                    ErrInvalidFirstChar,
		"$-2":                     ErrInvalidLength,
		"*-2\r\n":                 ErrInvalidLength,
		":i":                      ErrInvalidNumber,
		"*2\r\n:1\r\n:x\r\n":      ErrInvalidNumber,
		"*2\r\n*1\r\n?\r\n:1\r\n": ErrInvalidFirstChar,
		"*1\r\n$-5\r\n":           ErrInvalidLength,
	}

	for in, want := range cases {
		v, err := Decode([]byte(in))
		assert.ErrorIs(t, err, want, in)
		assert.Nil(t, v, in)
	}
}

func TestDecodeIncomplete(t *testing.T) {
	for _, in := range []string{
		"",
		"$3",
		"$3\r\n",
		"$3\r\nfoo",
		"*1",
		"*1\r\n",
		"*2\r\n:1\r\n",
		"*2\r\n$1\r\n",
		"*1\r\n*2\r\n:1\r\n",
		"*3\r\n:1\r\n:2\r\n$1\r\n",
	} {
		_, err := Decode([]byte(in))
		assert.ErrorIs(t, err, ErrIncomplete, "%q", in)
	}
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	buf := []byte("*2\r\n+OK\r\n$2\r\nhi\r\n")
	v, err := Decode(buf)
	require.NoError(t, err)

	for i := range buf {
		buf[i] = 'x'
	}
	assert.Equal(t, array(SimpleString{Value: "OK"}, bulk("hi")), v)
}

func TestDecoderMaxDepth(t *testing.T) {
	d := NewDecoder(Limits{MaxDepth: 2})

	v, err := d.Decode([]byte("*1\r\n*1\r\n:1\r\n"))
	require.NoError(t, err)
	assert.Equal(t, array(array(Integer{Value: 1})), v)

	_, err = d.Decode([]byte("*1\r\n*1\r\n*1\r\n:1\r\n"))
	assert.ErrorIs(t, err, ErrMaxDepth)
}

func TestDecoderDeepNestingDefault(t *testing.T) {
	var buf []byte
	for i := 0; i < 10000; i++ {
		buf = append(buf, "*1\r\n"...)
	}
	buf = append(buf, ":1\r\n"...)

	_, err := Decode(buf)
	assert.ErrorIs(t, err, ErrMaxDepth)
}

func TestDecoderLengthLimits(t *testing.T) {
	d := NewDecoder(Limits{MaxArrayLen: 2, MaxBulkLen: 3})

	_, err := d.Decode([]byte("*3\r\n:1\r\n:2\r\n:3\r\n"))
	assert.ErrorIs(t, err, ErrLengthOutOfRange)

	_, err = d.Decode([]byte("$4\r\nabcd\r\n"))
	assert.ErrorIs(t, err, ErrLengthOutOfRange)

	_, err = Decode([]byte("*3000000000\r\n:1\r\n"))
	assert.ErrorIs(t, err, ErrLengthOutOfRange)
}

func TestDecoderHugeDeclaredArrayIsIncomplete(t *testing.T) {
	_, err := Decode([]byte("*2000000000\r\n:1\r\n"))
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestDecoderStrictBulkLength(t *testing.T) {
	in := []byte("$5\r\nhi\r\n")

	v, err := Decode(in)
	require.NoError(t, err)
	assert.Equal(t, bulk("hi"), v)

	strict := NewDecoder(Limits{StrictBulkLength: true})
	_, err = strict.Decode(in)
	assert.ErrorIs(t, err, ErrBulkLength)

	v, err = strict.Decode([]byte("$2\r\nhi\r\n"))
	require.NoError(t, err)
	assert.Equal(t, bulk("hi"), v)
}

func TestNewDecoderDefaults(t *testing.T) {
	assert.Equal(t, DefaultLimits(), NewDecoder(Limits{}).Limits())

	l := NewDecoder(Limits{MaxDepth: 3, StrictBulkLength: true}).Limits()
	assert.Equal(t, 3, l.MaxDepth)
	assert.True(t, l.StrictBulkLength)
	assert.Equal(t, DefaultLimits().MaxBulkLen, l.MaxBulkLen)
}

func TestDecodeNext(t *testing.T) {
	d := NewDecoder(DefaultLimits())

	v, rest, err := d.DecodeNext([]byte("*2\r\n$1\r\na\r\n:2\r\n+OK\r\n"))
	require.NoError(t, err)
	assert.Equal(t, array(bulk("a"), Integer{Value: 2}), v)
	assert.Equal(t, []byte("+OK\r\n"), rest)

	v, rest, err = d.DecodeNext(rest)
	require.NoError(t, err)
	assert.Equal(t, SimpleString{Value: "OK"}, v)
	assert.Empty(t, rest)

	v, rest, err = d.DecodeNext([]byte(":5"))
	require.NoError(t, err)
	assert.Equal(t, Integer{Value: 5}, v)
	assert.Empty(t, rest)
}

func TestDecodeAll(t *testing.T) {
	d := NewDecoder(DefaultLimits())

	values, err := d.DecodeAll([]byte("*1\r\n$2\r\nhi\r\n$-1\r\n+OK\r\n:7"))
	require.NoError(t, err)
	assert.Equal(t, []Value{
		array(bulk("hi")),
		Null{Kind: TypeBlob},
		SimpleString{Value: "OK"},
		Integer{Value: 7},
	}, values)

	values, err = d.DecodeAll(nil)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestDecodeAllReportsFailingFrame(t *testing.T) {
	d := NewDecoder(DefaultLimits())

	values, err := d.DecodeAll([]byte("+OK\r\n?\r\n:1\r\n"))
	assert.Equal(t, []Value{SimpleString{Value: "OK"}}, values)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFirstChar)

	var frameErr *FrameError
	require.True(t, errors.As(err, &frameErr))
	assert.Equal(t, 1, frameErr.Index)
	assert.Equal(t, 5, frameErr.Offset)
	assert.Equal(t, "frame 1 at offset 5: resp: invalid first char", err.Error())
}
