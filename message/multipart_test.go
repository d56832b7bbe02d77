package message_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/postbox/message"
	"github.com/zostay/postbox/message/header"
)

func TestMultipart(t *testing.T) {
	t.Parallel()

	buf, expect, err := makeMultipart()
	assert.NoError(t, err)

	m, err := buf.Multipart()
	assert.NoError(t, err)

	assert.Equal(t, &m.Header, m.GetHeader())
	assert.Len(t, m.GetParts(), 1)
	assert.Nil(t, m.GetReader())
	assert.True(t, m.IsMultipart())

	out := &bytes.Buffer{}
	n, err := m.WriteTo(out)
	assert.Equal(t, int64(len(expect)), n)
	assert.NoError(t, err)
	assert.Equal(t, expect, out.String())
}

func TestMultipart_NoBoundary(t *testing.T) {
	t.Parallel()

	m := &message.Multipart{}
	m.SetMediaType("multipart/mixed")

	_, err := m.WriteTo(&bytes.Buffer{})
	assert.ErrorIs(t, err, header.ErrNoSuchFieldParameter)
}

func TestMultipart_Nested(t *testing.T) {
	t.Parallel()

	inner := &message.Buffer{}
	inner.SetBreak(header.LF)
	inner.SetMediaType("multipart/alternative")
	require.NoError(t, inner.SetBoundary("inner"))
	inner.Add(makePart(), makePart())
	alt, err := inner.Multipart()
	require.NoError(t, err)

	outer := &message.Buffer{}
	outer.SetBreak(header.LF)
	outer.SetMediaType("multipart/mixed")
	require.NoError(t, outer.SetBoundary("outer"))
	outer.Add(alt)
	mixed, err := outer.Multipart()
	require.NoError(t, err)

	const expect = `Content-Type: multipart/mixed; boundary=outer

--outer
Content-Type: multipart/alternative; boundary=inner

--inner
Content-Type: text/html

Test message.
--inner
Content-Type: text/html

Test message.
--inner--

--outer--
`

	out := &strings.Builder{}
	_, err = mixed.WriteTo(out)
	require.NoError(t, err)
	assert.Equal(t, expect, out.String())
}

func TestMultipartConstructors(t *testing.T) {
	t.Parallel()

	for mt, m := range map[string]*message.Multipart{
		"multipart/alternative": message.MultipartAlternative(makePart()),
		"multipart/related":     message.MultipartRelated(makePart()),
		"multipart/mixed":       message.MultipartMixed(makePart()),
	} {
		got, err := m.GetMediaType()
		assert.NoError(t, err)
		assert.Equal(t, mt, got)

		b, err := m.GetBoundary()
		assert.NoError(t, err)
		assert.Len(t, b, 30)
		assert.Len(t, m.GetParts(), 1)
	}
}

func TestNewMultipart_AvoidsBodies(t *testing.T) {
	t.Parallel()

	nested := message.MultipartAlternative(makePart())
	nb, err := nested.GetBoundary()
	require.NoError(t, err)

	buf := &message.Buffer{}
	buf.SetMediaType("text/plain")
	buf.SetSingle()
	_, _ = buf.Write([]byte("quoting --" + nb + " in the body"))
	leaf := buf.Opaque()

	m := message.NewMultipart("multipart/mixed", leaf, nested)
	b, err := m.GetBoundary()
	require.NoError(t, err)
	assert.NotEqual(t, nb, b)
	assert.NotContains(t, "quoting --"+nb+" in the body", b)

	out := &strings.Builder{}
	_, err = m.WriteTo(out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "quoting --"+nb+" in the body")
	assert.True(t, strings.HasSuffix(out.String(), "--"+b+"--\r\n"))
}
