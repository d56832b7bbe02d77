package header_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/postbox/message/header"
	"github.com/zostay/postbox/message/header/param"
)

func TestHeader_GetSet(t *testing.T) {
	t.Parallel()

	h := &header.Header{}

	_, err := h.Get("Subject")
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	h.Set("Subject", "hello")
	s, err := h.Get("subject")
	assert.NoError(t, err)
	assert.Equal(t, "hello", s)

	h.InsertBeforeField(h.Len(), "Subject", "again")
	s, err = h.Get("Subject")
	assert.ErrorIs(t, err, header.ErrManyFields)
	assert.Equal(t, "hello", s)
}

func TestHeader_SetReplacesInPlace(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.Set("From", "a@example.com")
	h.Set("X-Tag", "one")
	h.Set("To", "b@example.com")
	h.InsertBeforeField(h.Len(), "x-tag", "two")

	h.Set("X-Tag", "three")

	assert.Equal(t,
		"From: a@example.com\r\n"+
			"X-Tag: three\r\n"+
			"To: b@example.com\r\n"+
			"\r\n",
		h.String())
}

func TestHeader_Delete(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.Set("A", "1")
	h.InsertBeforeField(h.Len(), "B", "2")
	h.InsertBeforeField(h.Len(), "A", "3")

	h.Delete("a")
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "B", h.GetField(0).Name())
}

func TestHeader_ContentType(t *testing.T) {
	t.Parallel()

	h := &header.Header{}

	_, err := h.GetMediaType()
	assert.ErrorIs(t, err, header.ErrNoSuchField)
	assert.ErrorIs(t, h.SetCharset("utf-8"), header.ErrNoSuchField)

	h.SetMediaType("text/plain")
	_, err = h.GetCharset()
	assert.ErrorIs(t, err, header.ErrNoSuchFieldParameter)

	require.NoError(t, h.SetCharset("utf-8"))
	cs, err := h.GetCharset()
	assert.NoError(t, err)
	assert.Equal(t, "utf-8", cs)

	h.SetMediaType("text/html")
	ct, err := h.Get(header.ContentType)
	assert.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", ct)

	h.SetContentType(param.New("multipart/mixed"))
	require.NoError(t, h.SetBoundary("abc"))
	b, err := h.GetBoundary()
	assert.NoError(t, err)
	assert.Equal(t, "abc", b)

	pv, err := h.GetContentType()
	require.NoError(t, err)
	assert.Equal(t, "multipart", pv.Type())
	assert.Equal(t, "mixed", pv.Subtype())
}

func TestHeader_ContentDisposition(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.SetPresentation("attachment")
	require.NoError(t, h.SetFilename("report final.pdf"))

	d, err := h.Get(header.ContentDisposition)
	assert.NoError(t, err)
	assert.Equal(t, `attachment; filename="report final.pdf"`, d)

	p, err := h.GetPresentation()
	assert.NoError(t, err)
	assert.Equal(t, "attachment", p)

	fn, err := h.GetFilename()
	assert.NoError(t, err)
	assert.Equal(t, "report final.pdf", fn)
}

func TestHeader_ContentID(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.SetContentID("logo")

	raw, err := h.Get(header.ContentID)
	assert.NoError(t, err)
	assert.Equal(t, "<logo>", raw)

	id, err := h.GetContentID()
	assert.NoError(t, err)
	assert.Equal(t, "logo", id)
}

func TestHeader_TransferEncodingAndSubject(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.SetTransferEncoding("base64")
	h.SetSubject("Hi")

	te, err := h.GetTransferEncoding()
	assert.NoError(t, err)
	assert.Equal(t, "base64", te)

	s, err := h.GetSubject()
	assert.NoError(t, err)
	assert.Equal(t, "Hi", s)
}

func TestHeader_Date(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	d := time.Date(2023, 3, 14, 15, 9, 26, 0, time.FixedZone("", -5*3600))
	h.SetDate(d)

	raw, err := h.Get(header.Date)
	assert.NoError(t, err)
	assert.Equal(t, "Tue, 14 Mar 2023 15:09:26 -0500", raw)

	got, err := h.GetDate()
	assert.NoError(t, err)
	assert.True(t, d.Equal(got))
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	want := time.Date(2023, 3, 14, 15, 9, 26, 0, time.UTC)

	for _, s := range []string{
		"Tue, 14 Mar 2023 15:09:26 +0000",
		"2023-03-14T15:09:26Z",
	} {
		got, err := header.ParseTime(s)
		assert.NoError(t, err, s)
		assert.True(t, want.Equal(got), s)
	}

	_, err := header.ParseTime("not a date at all")
	assert.Error(t, err)
}
