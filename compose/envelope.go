package compose

import (
	"bytes"
	"io"
)

// Envelope is what a transport needs to deliver a compiled message. The
// recipients here, unlike the To and CC header fields, include BCC.
type Envelope struct {
	// Sender is the envelope sender, as set on the Message.
	Sender string

	// Recipients is To, then CC, then BCC, each in insertion order.
	Recipients []string

	// Document is the complete serialized message, header and body.
	Document []byte
}

// WriteTo writes the document to w.
func (e *Envelope) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(e.Document)
	return int64(n), err
}

// Reader returns a new reader over the document.
func (e *Envelope) Reader() io.Reader {
	return bytes.NewReader(e.Document)
}

// String returns the document as a string.
func (e *Envelope) String() string {
	return string(e.Document)
}
