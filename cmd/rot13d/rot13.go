// FILE: lixenwraith/asynclog/cmd/rot13d/rot13.go
package main

// rot13Byte rotates ASCII letters by 13 places; every other byte is unchanged
func rot13Byte(c byte) byte {
	switch {
	case (c >= 'a' && c <= 'm') || (c >= 'A' && c <= 'M'):
		return c + 13
	case (c >= 'n' && c <= 'z') || (c >= 'N' && c <= 'Z'):
		return c - 13
	default:
		return c
	}
}

// rot13 appends the rotated form of src to dst
func rot13(dst, src []byte) []byte {
	for _, c := range src {
		dst = append(dst, rot13Byte(c))
	}
	return dst
}
