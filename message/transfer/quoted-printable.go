package transfer

import (
	"bytes"
	"io"
	"mime/quotedprintable"

	"github.com/zostay/postbox/message/header"
)

type qpWriter struct {
	buf bytes.Buffer
	qpw *quotedprintable.Writer
	lbr []byte
	w   io.Writer
}

func (qw *qpWriter) Write(b []byte) (int, error) {
	return qw.qpw.Write(b)
}

// Close flushes the encoder and writes the buffered output with every CRLF
// replaced by the requested break.
func (qw *qpWriter) Close() error {
	if err := qw.qpw.Close(); err != nil {
		return err
	}

	out := qw.buf.Bytes()
	if !bytes.Equal(qw.lbr, header.CRLF.Bytes()) {
		out = bytes.ReplaceAll(out, header.CRLF.Bytes(), qw.lbr)
	}

	_, err := qw.w.Write(out)
	return err
}

// NewQuotedPrintableEncoder will transform all bytes written to the returned
// io.WriteCloser into quoted-printable form and write them to the given
// io.Writer. Output is held until Close so that line breaks, hard and soft,
// can be written with lbr.
func NewQuotedPrintableEncoder(w io.Writer, lbr header.Break) io.WriteCloser {
	qw := &qpWriter{lbr: lbr.Bytes(), w: w}
	qw.qpw = quotedprintable.NewWriter(&qw.buf)
	return qw
}
