package message

import (
	"io"

	"github.com/zostay/postbox/message/header"
)

// Multipart is a multipart MIME message. When building these the MIME type
// set in the Content-Type header should always start with multipart/*.
type Multipart struct {
	// Header is the header for the message.
	header.Header

	// parts holds this layer's parts
	parts []Part
}

// WriteTo writes the Multipart header and parts to the destination
// io.Writer. This method will fail with an error if the given message does
// not have a Content-Type boundary parameter set. May return an error on an
// IO error as well.
//
// Each part is introduced by a delimiter line and followed by a line break,
// so every delimiter is preceded by a break. The closing delimiter is
// followed by a break.
//
// This may only be safely called one time because it will consume all the
// bytes from all the io.Reader objects of the leaves within.
func (mm *Multipart) WriteTo(w io.Writer) (int64, error) {
	boundary, err := mm.GetBoundary()
	if err != nil {
		return 0, err
	}

	n, err := mm.Header.WriteTo(w)
	if err != nil {
		return n, err
	}

	bn, err := writeParts(w, mm.parts, boundary, mm.Break())
	return n + bn, err
}

// writeParts writes each part between boundary delimiters, ending with the
// closing delimiter.
func writeParts(w io.Writer, parts []Part, boundary string, lbr header.Break) (int64, error) {
	var n int64
	write := func(s string) error {
		bn, err := io.WriteString(w, s)
		n += int64(bn)
		return err
	}

	br := lbr.String()
	for _, part := range parts {
		if err := write("--" + boundary + br); err != nil {
			return n, err
		}

		pn, err := part.WriteTo(w)
		n += pn
		if err != nil {
			return n, err
		}

		if err := write(br); err != nil {
			return n, err
		}
	}

	if err := write("--" + boundary + "--" + br); err != nil {
		return n, err
	}

	return n, nil
}

// IsMultipart always returns true.
func (mm *Multipart) IsMultipart() bool {
	return true
}

// GetHeader returns the header for the message.
func (mm *Multipart) GetHeader() *header.Header {
	return &mm.Header
}

// GetReader always returns nil.
func (mm *Multipart) GetReader() io.Reader {
	return nil
}

// GetParts returns the sub-parts of this message or nil if there aren't any.
func (mm *Multipart) GetParts() []Part {
	return mm.parts
}

// NewMultipart returns a Multipart with the given multipart/* media type and
// parts attached. Its boundary comes from GenerateSafeBoundary, checked
// against every leaf body whose bytes are at hand.
func NewMultipart(mt string, parts ...Part) *Multipart {
	m := &Multipart{parts: parts}
	m.SetMediaType(mt)
	_ = m.SetBoundary(GenerateSafeBoundary(leafBodies(parts)...))
	return m
}

// leafBodies collects the bodies of leaves held in memory. A leaf that reads
// from anywhere else is skipped, as reading it would consume it.
func leafBodies(parts []Part) [][]byte {
	var bodies [][]byte
	for _, p := range parts {
		if p.IsMultipart() {
			bodies = append(bodies, leafBodies(p.GetParts())...)
			continue
		}
		if b, ok := p.GetReader().(interface{ Bytes() []byte }); ok {
			bodies = append(bodies, b.Bytes())
		}
	}
	return bodies
}

// MultipartAlternative returns a multipart/alternative Multipart holding the
// given parts, each an alternative form of the same content.
func MultipartAlternative(parts ...Part) *Multipart {
	return NewMultipart("multipart/alternative", parts...)
}

// MultipartRelated returns a multipart/related Multipart. The first part is
// the root and the rest are resources it refers to.
func MultipartRelated(parts ...Part) *Multipart {
	return NewMultipart("multipart/related", parts...)
}

// MultipartMixed returns a multipart/mixed Multipart holding the given parts.
func MultipartMixed(parts ...Part) *Multipart {
	return NewMultipart("multipart/mixed", parts...)
}
