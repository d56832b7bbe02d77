// Package field provides the low-level pieces of a header: the Field itself,
// line folding, charset transcoding, and RFC 2047 encoded words.
package field

import "fmt"

// Field is a single header field, a name and an unfolded body. The body is
// kept exactly as set. Encoding of non-ASCII text is the job of the caller
// (see Encode).
type Field struct {
	name string
	body string
}

// New returns a new Field with the given name and body.
func New(name, body string) *Field {
	return &Field{name, body}
}

// Name returns the name of the header field.
func (f *Field) Name() string {
	return f.name
}

// SetName updates the name of the header field.
func (f *Field) SetName(name string) {
	f.name = name
}

// Body returns the value of the header field as a string.
func (f *Field) Body() string {
	return f.body
}

// SetBody updates the body of the header field.
func (f *Field) SetBody(body string) {
	f.body = body
}

// String returns the complete, unfolded header field as a string.
func (f *Field) String() string {
	return fmt.Sprintf("%s: %s", f.name, f.body)
}

// Bytes returns the complete, unfolded header field as a slice of bytes.
func (f *Field) Bytes() []byte {
	return []byte(f.String())
}
