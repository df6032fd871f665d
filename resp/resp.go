// Package resp decodes and encodes RESP2 frames held in memory.
//
// https://github.com/redis/redis-specifications/blob/master/protocol/RESP2.md
package resp

const CRLF string = "\r\n"

var crlf = []byte(CRLF)

// Types equivalent to RESP version 2
const (
	TypeArray   byte = '*'
	TypeBlob    byte = '$'
	TypeSimple  byte = '+'
	TypeError   byte = '-'
	TypeInteger byte = ':'
)

// Value is one decoded RESP value. It is implemented by SimpleString,
// SimpleError, Integer, BulkString, Array, Null and Stub.
type Value interface {
	// Type returns the wire prefix of the value.
	Type() byte
}

type SimpleString struct {
	Value string
}

type SimpleError struct {
	Message string
}

type Integer struct {
	Value int64
}

type BulkString struct {
	Value []byte
}

// Array represents an array in RESP
type Array struct {
	Elements []Value
}

// Null is a bulk string or array sent with the length -1.
type Null struct {
	Kind byte
}

// Stub is an aggregate header line whose payload has not been read yet.
// Len is the declared length, or -1 for null.
type Stub struct {
	Kind byte
	Len  int
}

func (SimpleString) Type() byte { return TypeSimple }
func (SimpleError) Type() byte  { return TypeError }
func (Integer) Type() byte      { return TypeInteger }
func (BulkString) Type() byte   { return TypeBlob }
func (Array) Type() byte        { return TypeArray }
func (n Null) Type() byte       { return n.Kind }
func (s Stub) Type() byte       { return s.Kind }

func (e SimpleError) Error() string { return e.Message }
