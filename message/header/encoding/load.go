// Package encoding replaces the charset functions of the field package with
// ones that know every charset in golang.org/x/text/encoding/ianaindex.
//
// This will make the size of your compiled binaries considerably larger. But
// it will also let your messages carry headers and bodies in pretty much any
// character set a mail reader might expect.
//
//	import _ "github.com/zostay/postbox/message/header/encoding"
package encoding

import (
	"fmt"

	"golang.org/x/text/encoding"
	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/zostay/postbox/message/header/field"
)

func init() {
	field.CharsetEncoder = CharsetEncoder
	field.CharsetDecoder = CharsetDecoder
}

func lookup(charset string) (encoding.Encoding, error) {
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return nil, err
	}

	if e == nil {
		return nil, fmt.Errorf("%w: %s", field.ErrUnsupportedCharset, charset)
	}

	return e, nil
}

// CharsetEncoder transcodes the UTF-8 string s into the named charset. It
// fails if the charset is unknown or cannot represent every rune of s.
func CharsetEncoder(charset, s string) ([]byte, error) {
	if field.IsUTF8Charset(charset) || field.IsASCIICharset(charset) {
		return field.DefaultCharsetEncoder(charset, s)
	}

	e, err := lookup(charset)
	if err != nil {
		return nil, err
	}

	es, err := e.NewEncoder().String(s)
	if err != nil {
		return nil, err
	}

	return []byte(es), nil
}

// CharsetDecoder transcodes bytes in the named charset into UTF-8.
func CharsetDecoder(charset string, b []byte) (string, error) {
	if field.IsUTF8Charset(charset) || field.IsASCIICharset(charset) {
		return field.DefaultCharsetDecoder(charset, b)
	}

	e, err := lookup(charset)
	if err != nil {
		return "", err
	}

	eb, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(eb), nil
}
