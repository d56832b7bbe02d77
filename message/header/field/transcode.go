package field

import (
	"encoding/base64"
	"mime"
	"strings"
)

// MaxEncodedWordLength is the longest encoded word RFC 2047 permits.
const MaxEncodedWordLength = 75

// NeedsEncoding returns true unless every byte of s is printable ASCII, a
// space, or a tab. Other ASCII control characters count as needing encoding
// so that a line break can never end up raw inside a header.
func NeedsEncoding(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < ' ' && c != '\t') || c > '~' {
			return true
		}
	}
	return false
}

// Encode returns text ready to be placed in a header field body. Text that
// does not need encoding is returned unchanged. Anything else is transcoded
// to charset and returned as RFC 2047 B-encoded words, each no longer than
// MaxEncodedWordLength and separated by spaces, so the header can be folded
// between them. Words are only split between whole characters.
//
// When charset is unknown, or cannot represent text, the words are written in
// UTF-8 instead, so the value always decodes back to the original text.
func Encode(text, charset string) string {
	if !NeedsEncoding(text) {
		return text
	}

	if IsASCIICharset(charset) {
		charset = DefaultCharset
	}

	if IsUTF8Charset(charset) {
		return mime.BEncoding.Encode(charset, text)
	}

	words, err := encodeWords(text, charset)
	if err != nil {
		return mime.BEncoding.Encode(DefaultCharset, text)
	}

	return strings.Join(words, " ")
}

// encodeWords transcodes text to charset a character at a time, starting a
// new encoded word whenever the next character would push the current one
// past MaxEncodedWordLength.
func encodeWords(text, charset string) ([]string, error) {
	prefix := "=?" + charset + "?b?"
	const suffix = "?="

	room := MaxEncodedWordLength - len(prefix) - len(suffix)
	maxRaw := room / 4 * 3
	if maxRaw < 1 {
		// the charset name alone leaves no room, so use the default
		return nil, ErrUnsupportedCharset
	}

	var (
		words []string
		chunk []byte
		runes []rune
	)

	flush := func() {
		if len(chunk) == 0 {
			return
		}
		words = append(words, prefix+base64.StdEncoding.EncodeToString(chunk)+suffix)
		chunk, runes = nil, runes[:0]
	}

	for _, r := range text {
		b, err := CharsetEncoder(charset, string(append(runes, r)))
		if err != nil {
			return nil, err
		}

		if len(b) > maxRaw && len(runes) > 0 {
			flush()
			if b, err = CharsetEncoder(charset, string(r)); err != nil {
				return nil, err
			}
		}

		if len(b) > maxRaw {
			return nil, ErrUnsupportedCharset
		}

		chunk = b
		runes = append(runes, r)
	}
	flush()

	return words, nil
}

// Decode transforms a single header field body and looks for MIME word
// encoded values. When they are found, these are decoded into native
// Unicode.
func Decode(body string) (string, error) {
	dec := &mime.WordDecoder{
		CharsetReader: CharsetDecoderToCharsetReader(CharsetDecoder),
	}

	if strings.Contains(body, "=?") {
		return dec.DecodeHeader(body)
	}

	return body, nil
}
