package message

import (
	"io"

	"github.com/zostay/postbox/message/header"
	"github.com/zostay/postbox/message/transfer"
)

// Opaque is a leaf part. It is simply a header and a message body, very
// similar to the net/mail message implementation.
type Opaque struct {
	// Header will contain the header of the part. A top-level message must
	// have several headers to be correct.
	header.Header

	// Reader will contain the body content of the message before transfer
	// encoding. If the content is zero bytes long, then Reader may be nil.
	io.Reader
}

// WriteTo writes the Opaque header and body to the destination io.Writer. The
// body is encoded according to the Content-Transfer-Encoding header as it is
// written. The count returned is the number of unencoded body bytes plus the
// header bytes.
//
// This can only be safely called once as it will consume the io.Reader.
func (m *Opaque) WriteTo(w io.Writer) (int64, error) {
	total, err := m.Header.WriteTo(w)
	if err != nil {
		return total, err
	}

	if m.Reader == nil {
		return total, nil
	}

	tw := transfer.ApplyTransferEncoding(&m.Header, w)
	bn, err := io.Copy(tw, m.Reader)
	total += bn
	if err != nil {
		_ = tw.Close()
		return total, err
	}

	return total, tw.Close()
}

// IsMultipart always returns false.
func (m *Opaque) IsMultipart() bool {
	return false
}

// GetHeader returns the header for the message.
func (m *Opaque) GetHeader() *header.Header {
	return &m.Header
}

// GetReader returns the reader containing the body of the message.
func (m *Opaque) GetReader() io.Reader {
	return m.Reader
}

// GetParts always returns nil.
func (m *Opaque) GetParts() []Part {
	return nil
}
