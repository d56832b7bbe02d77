package field

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultCharset is the charset used when none is given and the charset
// fallen back to when a value cannot be represented in the requested one.
const DefaultCharset = "utf-8"

// ErrUnsupportedCharset is returned by the default charset functions when
// asked to work with anything other than UTF-8 or ASCII.
var ErrUnsupportedCharset = errors.New("unsupported byte encoding")

// CharsetEncoderFunc transforms the UTF-8 string s into bytes in the named
// charset.
type CharsetEncoderFunc func(charset, s string) ([]byte, error)

// CharsetDecoderFunc transforms bytes in the named charset into a UTF-8
// string.
type CharsetDecoderFunc func(charset string, b []byte) (string, error)

var (
	// CharsetEncoder is used by Encode and by the message compiler to
	// transcode text. By default it only knows UTF-8 and ASCII. Import
	// github.com/zostay/postbox/message/header/encoding to replace it with one
	// that knows every IANA charset.
	CharsetEncoder CharsetEncoderFunc = DefaultCharsetEncoder

	// CharsetDecoder is used by Decode. It starts out the same way as
	// CharsetEncoder and is replaced by the same import.
	CharsetDecoder CharsetDecoderFunc = DefaultCharsetDecoder
)

// IsUTF8Charset returns true if the charset names UTF-8.
func IsUTF8Charset(charset string) bool {
	return strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "utf8")
}

// IsASCIICharset returns true if the charset names ASCII. The empty string
// counts, as RFC 2045 makes US-ASCII the default.
func IsASCIICharset(charset string) bool {
	return charset == "" ||
		strings.EqualFold(charset, "us-ascii") ||
		strings.EqualFold(charset, "ascii")
}

// DefaultCharsetEncoder handles UTF-8 and ASCII. Runes that ASCII cannot
// hold become the SUB control character (0x1a).
func DefaultCharsetEncoder(charset, s string) ([]byte, error) {
	switch {
	case IsUTF8Charset(charset):
		return []byte(s), nil
	case IsASCIICharset(charset):
		b := make([]byte, 0, len(s))
		for _, c := range s {
			if c > unicode.MaxASCII {
				b = append(b, 0x1a)
				continue
			}
			b = append(b, byte(c))
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedCharset, charset)
}

// DefaultCharsetDecoder handles UTF-8 and ASCII. Bytes that are not ASCII
// become the Unicode replacement character.
func DefaultCharsetDecoder(charset string, b []byte) (string, error) {
	switch {
	case IsUTF8Charset(charset):
		return string(b), nil
	case IsASCIICharset(charset):
		var sb strings.Builder
		for _, c := range b {
			if c > unicode.MaxASCII {
				sb.WriteRune(utf8.RuneError)
				continue
			}
			sb.WriteByte(c)
		}
		return sb.String(), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedCharset, charset)
}

// CharsetDecoderToCharsetReader adapts a CharsetDecoderFunc for use as the
// CharsetReader of a mime.WordDecoder.
func CharsetDecoderToCharsetReader(
	decoder CharsetDecoderFunc,
) func(string, io.Reader) (io.Reader, error) {
	return func(charset string, r io.Reader) (io.Reader, error) {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		s, err := decoder(charset, b)
		if err != nil {
			return nil, err
		}

		return bytes.NewBufferString(s), nil
	}
}
