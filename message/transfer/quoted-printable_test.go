package transfer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/postbox/message/header"
	"github.com/zostay/postbox/message/transfer"
)

// we only need to test that qp is being applied, not that the encoding is
// working correctly... we'll trust the golang core team to have done that
// already

var qpEnc = []byte("=3D>?")
var qpDec = []byte{0x3d, 0x3e, 0x3f}

func TestNewQuotedPrintableEncoder(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	qpewc := transfer.NewQuotedPrintableEncoder(w, header.CRLF)
	n, err := qpewc.Write(qpDec)
	assert.Equal(t, len(qpDec), n)
	assert.NoError(t, err)

	err = qpewc.Close()
	assert.NoError(t, err)

	assert.Equal(t, qpEnc, w.Bytes())
}

func TestNewQuotedPrintableEncoder_Breaks(t *testing.T) {
	t.Parallel()

	in := "Gr\xc3\xbc\xc3\x9fe\n" + strings.Repeat("x", 100)

	w := &bytes.Buffer{}
	qpewc := transfer.NewQuotedPrintableEncoder(w, header.LF)
	_, err := qpewc.Write([]byte(in))
	require.NoError(t, err)
	require.NoError(t, qpewc.Close())

	out := w.String()
	assert.NotContains(t, out, "\r")
	assert.True(t, strings.HasPrefix(out, "Gr=C3=BC=C3=9Fe\n"))
	assert.Contains(t, out, "=\n")

	w.Reset()
	qpewc = transfer.NewQuotedPrintableEncoder(w, header.CRLF)
	_, err = qpewc.Write([]byte(in))
	require.NoError(t, err)
	require.NoError(t, qpewc.Close())
	assert.True(t, strings.HasPrefix(w.String(), "Gr=C3=BC=C3=9Fe\r\n"))
	assert.Contains(t, w.String(), "=\r\n")
}
