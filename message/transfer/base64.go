package transfer

import (
	"encoding/base64"
	"io"

	"github.com/zostay/postbox/message/header"
)

// Base64LineLength is the number of encoded characters written per line.
const Base64LineLength = 76

type newlineWriter struct {
	every int
	acc   int
	lbr   []byte
	w     io.Writer
}

// Write passes b through, inserting a line break every nw.every bytes.
func (nw *newlineWriter) Write(b []byte) (int, error) {
	n := 0
	for len(b) > 0 {
		chunk := nw.every - nw.acc
		if chunk > len(b) {
			chunk = len(b)
		}

		ln, err := nw.w.Write(b[:chunk])
		n += ln
		if err != nil {
			return n, err
		}

		nw.acc += chunk
		b = b[chunk:]

		if nw.acc == nw.every && len(b) > 0 {
			if _, err := nw.w.Write(nw.lbr); err != nil {
				return n, err
			}
			nw.acc = 0
		}
	}

	return n, nil
}

// Close terminates the final line, if anything was written to it.
func (nw *newlineWriter) Close() error {
	if nw.acc == 0 {
		return nil
	}

	_, err := nw.w.Write(nw.lbr)
	return err
}

type base64Writer struct {
	enc io.WriteCloser
	nw  *newlineWriter
}

func (bw *base64Writer) Write(b []byte) (int, error) {
	return bw.enc.Write(b)
}

func (bw *base64Writer) Close() error {
	if err := bw.enc.Close(); err != nil {
		return err
	}
	return bw.nw.Close()
}

// NewBase64Encoder will translate all bytes written to the returned
// io.WriteCloser into base64 encoding and write those to the give io.Writer.
// Encoded lines are Base64LineLength characters long and every line,
// including the last, ends with lbr.
func NewBase64Encoder(w io.Writer, lbr header.Break) io.WriteCloser {
	nw := &newlineWriter{
		every: Base64LineLength,
		lbr:   lbr.Bytes(),
		w:     w,
	}
	return &base64Writer{
		enc: base64.NewEncoder(base64.StdEncoding, nw),
		nw:  nw,
	}
}
