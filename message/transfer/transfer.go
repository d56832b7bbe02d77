package transfer

import (
	"io"

	"github.com/zostay/postbox/message/header"
)

const (
	None            = ""                 // bytes will be left as-is
	Bit7            = "7bit"             // bytes will be left as-is
	Bit8            = "8bit"             // bytes will be left as-is
	Binary          = "binary"           // bytes will be left as-is
	QuotedPrintable = "quoted-printable" // bytes will be transformed into quoted-printable
	Base64          = "base64"           // bytes will be transformed into base64
)

// Encoder returns an io.WriteCloser, which will encode binary data and write
// the encoded form to the given io.Writer, breaking lines with the given
// header.Break. You must call Close() on the returned io.WriteCloser when you
// are finished.
type Encoder func(io.Writer, header.Break) io.WriteCloser

// Encoders defines the supported Content-Transfer-Encodings and how to
// handle them. It can be modified to change the global handling of transfer
// encodings.
var Encoders = map[string]Encoder{
	None:            NewAsIsEncoder,
	Bit7:            NewAsIsEncoder,
	Bit8:            NewAsIsEncoder,
	Binary:          NewAsIsEncoder,
	QuotedPrintable: NewQuotedPrintableEncoder,
	Base64:          NewBase64Encoder,
}

// ApplyTransferEncoding is a helper that will check the given header to see
// if transfer encoding ought to be performed. It will return an
// io.WriteCloser that will write the encoding (or just pass data through if
// no encoding is necessary). Lines are broken with the header's Break.
//
// You must call Close() on the returned io.WriteCloser when you are finished
// writing.
func ApplyTransferEncoding(h *header.Header, w io.Writer) io.WriteCloser {
	cte, err := h.GetTransferEncoding()
	if err != nil {
		return NewAsIsEncoder(w, h.Break())
	}

	if enc, ok := Encoders[cte]; ok {
		return enc(w, h.Break())
	}

	return NewAsIsEncoder(w, h.Break())
}
