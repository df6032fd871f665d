package resp

// Lines returns how many CRLF-terminated lines the encoding of v spans.
// An array header is followed directly by its elements with no total
// byte length, so the only way to find where element k+1 starts is to
// count the lines element k used.
func Lines(v Value) int {
	switch v := v.(type) {
	case BulkString:
		return 2
	case Array:
		n := 1
		for _, elem := range v.Elements {
			n += Lines(elem)
		}
		return n
	default:
		return 1
	}
}
