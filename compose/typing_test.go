package compose_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/postbox/compose"
	"github.com/zostay/postbox/mimetype"
)

func attachOne(t *testing.T, name string, data []byte, mediaType string, opts ...compose.CompileOption) shape {
	t.Helper()

	m := compose.New(
		compose.From("a@x.com"),
		compose.To("b@x.com"),
		compose.Subject("typing"),
		compose.Attachment(name, data, mediaType),
	)

	env, err := compose.Compile(m, opts...)
	require.NoError(t, err)

	s := parse(t, env.Document)
	require.Len(t, s.Parts, 2)
	return s.Parts[1]
}

func TestTyping(t *testing.T) {
	t.Parallel()

	binary := []byte{0x00, 0xff, 0x10, 0x80}

	tests := []struct {
		name      string
		filename  string
		data      []byte
		mediaType string
		wantType  string
		wantCS    string
		wantCTE   string
	}{
		{"guessed image", "pic.png", binary, "", "image/png", "", "base64"},
		{"guessed audio", "song.mp3", binary, "", "audio/mpeg", "", "base64"},
		{"guessed pdf", "doc.pdf", binary, "", "application/pdf", "", "base64"},
		{"compressed", "notes.txt.gz", binary, "", "application/octet-stream", "", "base64"},
		{"unknown extension", "data.zzqqxx", binary, "", "application/octet-stream", "", "base64"},
		{"no extension", "README", []byte("read me"), "", "application/octet-stream", "", "base64"},
		{"explicit", "blob", binary, "image/webp", "image/webp", "", "base64"},
		{"explicit beats guess", "pic.png", binary, "audio/ogg", "audio/ogg", "", "base64"},
		{"explicit garbage", "pic.png", binary, "not a type", "application/octet-stream", "", "base64"},
		{"explicit no slash", "pic.png", binary, "image", "application/octet-stream", "", "base64"},
		{"ascii text", "notes.txt", []byte("hello\n"), "", "text/plain", "us-ascii", "7bit"},
		{"utf-8 text", "notes.txt", []byte("héllo\n"), "", "text/plain", "utf-8", "base64"},
		{"other text", "notes.txt", []byte{'h', 0xe9, '\n'}, "", "text/plain", "", "base64"},
		{"explicit charset", "notes.csv", []byte{'h', 0xe9, '\n'}, "text/csv; charset=iso-8859-1", "text/csv", "iso-8859-1", "base64"},
		{"html", "page.html", []byte("<p>x</p>"), "", "text/html", "us-ascii", "7bit"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := attachOne(t, tc.filename, tc.data, tc.mediaType)
			assert.Equal(t, tc.wantType, p.MediaType)
			assert.Equal(t, tc.wantCS, p.Params["charset"])
			assert.Equal(t, tc.wantCTE, p.Header.Get("Content-Transfer-Encoding"))

			switch {
			case tc.wantCTE == "7bit":
				assert.Equal(t, string(tc.data), strings.ReplaceAll(p.Body, "\r\n", "\n"))
			case tc.wantCS != "iso-8859-1":
				assert.Equal(t, string(tc.data), p.Body)
			}
		})
	}
}

func TestTyping_LongTextLine(t *testing.T) {
	t.Parallel()

	data := []byte(strings.Repeat("a", compose.MaxLineLength))
	p := attachOne(t, "wide.txt", data, "")
	assert.Equal(t, "base64", p.Header.Get("Content-Transfer-Encoding"))
	assert.Equal(t, string(data), p.Body)
}

func TestTyping_Guesser(t *testing.T) {
	t.Parallel()

	var asked []string
	g := mimetype.GuesserFunc(func(name string) (string, string) {
		asked = append(asked, name)
		return "application/x-custom", ""
	})

	p := attachOne(t, "thing.png", []byte("x"), "", compose.WithTypeGuesser(g))
	assert.Equal(t, "application/x-custom", p.MediaType)
	assert.Equal(t, []string{"thing.png"}, asked)

	p = attachOne(t, "thing.png", []byte("x"), "", compose.WithTypeGuesser(mimetype.Unknown))
	assert.Equal(t, "application/octet-stream", p.MediaType)
}

func TestTyping_Base64Lines(t *testing.T) {
	t.Parallel()

	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i)
	}

	m := compose.New(
		compose.From("a@x.com"),
		compose.To("b@x.com"),
		compose.Subject("b64"),
		compose.Attachment("blob.bin", data, "application/octet-stream"),
	)

	env, err := m.Compile(fixed()...)
	require.NoError(t, err)

	doc := env.String()
	start := strings.Index(doc, "Content-Disposition: attachment; filename=blob.bin\r\n\r\n")
	require.Greater(t, start, 0)
	rest := doc[start:]
	rest = rest[strings.Index(rest, "\r\n\r\n")+4:]
	rest = rest[:strings.Index(rest, "\r\n\r\n--b1--")]

	lines := strings.Split(rest, "\r\n")
	for _, l := range lines[:len(lines)-1] {
		assert.Len(t, l, 76)
	}

	got, err := base64.StdEncoding.DecodeString(strings.Join(lines, ""))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestTyping_NonASCIIFilename(t *testing.T) {
	t.Parallel()

	p := attachOne(t, "Bericht März.pdf", []byte("x"), "")
	_, params, err := p.Header.ContentDisposition()
	require.NoError(t, err)
	assert.Equal(t, "Bericht März.pdf", params["filename"])
}
