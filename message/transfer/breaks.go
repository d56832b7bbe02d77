package transfer

import (
	"bytes"

	"github.com/zostay/postbox/message/header"
)

// NormalizeBreaks returns a copy of b with every CRLF, lone CR, and lone LF
// replaced by lbr.
func NormalizeBreaks(b []byte, lbr header.Break) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\r':
			if i+1 < len(b) && b[i+1] == '\n' {
				i++
			}
			out = append(out, lbr...)
		case '\n':
			out = append(out, lbr...)
		default:
			out = append(out, b[i])
		}
	}
	return out
}

// LongestLine returns the length of the longest line in b, not counting
// line breaks.
func LongestLine(b []byte) int {
	longest := 0
	for len(b) > 0 {
		ix := bytes.IndexAny(b, "\r\n")
		if ix < 0 {
			ix = len(b)
		}
		if ix > longest {
			longest = ix
		}
		if ix == len(b) {
			break
		}
		b = b[ix+1:]
	}
	return longest
}
