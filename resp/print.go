package resp

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Format uint8

const (
	// FormatStandard prints values the way redis-cli does on a terminal.
	FormatStandard Format = iota
	// FormatRaw prints payloads only, one per line.
	FormatRaw
	// FormatTree prints the type of every node as an indented tree.
	FormatTree
)

func (f Format) String() string {
	switch f {
	case FormatStandard:
		return "standard"
	case FormatRaw:
		return "raw"
	case FormatTree:
		return "tree"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// ParseFormat maps a format name back to its Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "":
		return FormatStandard, nil
	case "raw":
		return FormatRaw, nil
	case "tree":
		return FormatTree, nil
	default:
		return 0, fmt.Errorf("unknown output format %q", s)
	}
}

// Fprint writes v to w in the given format.
func Fprint(w io.Writer, v Value, f Format) error {
	_, err := io.WriteString(w, Sprint(v, f))
	return err
}

// Sprint formats v in the given format. The result ends with a newline
// unless it is empty.
func Sprint(v Value, f Format) string {
	var b strings.Builder
	switch f {
	case FormatRaw:
		printRaw(&b, v)
	case FormatTree:
		printTree(&b, v, "")
	default:
		printStandard(&b, v, "")
	}
	return b.String()
}

func printStandard(b *strings.Builder, v Value, prefix string) {
	switch n := v.(type) {
	case SimpleString:
		b.WriteString(n.Value + "\n")
	case SimpleError:
		b.WriteString("(error) " + n.Message + "\n")
	case Integer:
		fmt.Fprintf(b, "(integer) %d\n", n.Value)
	case BulkString:
		b.WriteString(strconv.Quote(string(n.Value)) + "\n")
	case Null:
		b.WriteString("(nil)\n")
	case Array:
		if len(n.Elements) == 0 {
			b.WriteString("(empty array)\n")
			return
		}
		width := len(strconv.Itoa(len(n.Elements)))
		for i, elem := range n.Elements {
			if i > 0 {
				b.WriteString(prefix)
			}
			label := fmt.Sprintf("%*d) ", width, i+1)
			b.WriteString(label)
			printStandard(b, elem, prefix+strings.Repeat(" ", len(label)))
		}
	case Stub:
		fmt.Fprintf(b, "(stub) %c%d\n", n.Kind, n.Len)
	default:
		b.WriteString("(unknown)\n")
	}
}

func printRaw(b *strings.Builder, v Value) {
	switch n := v.(type) {
	case SimpleString:
		b.WriteString(n.Value + "\n")
	case SimpleError:
		b.WriteString(n.Message + "\n")
	case Integer:
		b.WriteString(strconv.FormatInt(n.Value, 10) + "\n")
	case BulkString:
		b.Write(n.Value)
		b.WriteString("\n")
	case Null:
		b.WriteString("\n")
	case Array:
		for _, elem := range n.Elements {
			printRaw(b, elem)
		}
	}
}

func printTree(b *strings.Builder, v Value, indent string) {
	switch n := v.(type) {
	case SimpleString:
		b.WriteString(indent + "SimpleString: " + n.Value + "\n")
	case SimpleError:
		b.WriteString(indent + "Error: " + n.Message + "\n")
	case Integer:
		fmt.Fprintf(b, "%sInteger: %d\n", indent, n.Value)
	case BulkString:
		b.WriteString(indent + "BulkString: " + string(n.Value) + "\n")
	case Null:
		if n.Kind == TypeArray {
			b.WriteString(indent + "Null (array)\n")
		} else {
			b.WriteString(indent + "Null (bulk)\n")
		}
	case Array:
		b.WriteString(indent + "Array:\n")
		for _, elem := range n.Elements {
			printTree(b, elem, indent+"  ")
		}
	case Stub:
		fmt.Fprintf(b, "%sStub: %c%d\n", indent, n.Kind, n.Len)
	default:
		b.WriteString(indent + "Unknown Node Type!\n")
	}
}
