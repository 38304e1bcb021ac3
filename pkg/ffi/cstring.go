package ffi

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// EncodeCString renders s as a null-terminated Windows-1252 byte buffer,
// the C-string variant spec.md §6 calls for — mirroring how the teacher
// repo decodes compressed registry-value names through the same code
// page when bridging into hive bytes that were never UTF-8 to begin with.
func EncodeCString(s string) ([]byte, error) {
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("ffi: cstring encode: %w", err)
	}
	return append(encoded, 0), nil
}

// DecodeCString reads a null-terminated Windows-1252 buffer back into a
// Go string, stopping at the first NUL or the end of buf.
func DecodeCString(buf []byte) (string, error) {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(buf)
	if err != nil {
		return "", fmt.Errorf("ffi: cstring decode: %w", err)
	}
	return string(decoded), nil
}
