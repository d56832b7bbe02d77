package mimetype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/postbox/mimetype"
)

func TestDefault_GuessType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, mediaType, encoding string
	}{
		{"test.png", "image/png", ""},
		{"PHOTO.JPG", "image/jpeg", ""},
		{"dir/notes.txt", "text/plain", ""},
		{"song.mp3", "audio/mpeg", ""},
		{"report.pdf", "application/pdf", ""},
		{"notes.txt.gz", "text/plain", "gzip"},
		{"archive.tar.bz2", "application/x-tar", "bzip2"},
		{"archive.tgz", "application/x-tar", "gzip"},
		{"blob.gz", "", "gzip"},
		{"README", "", ""},
		{"", "", ""},
		{"weird.zzqqxx", "", ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mt, enc := mimetype.Default.GuessType(tc.name)
			assert.Equal(t, tc.mediaType, mt)
			assert.Equal(t, tc.encoding, enc)
		})
	}
}

func TestTable_NoFallback(t *testing.T) {
	t.Parallel()

	tbl := &mimetype.Table{Types: map[string]string{".foo": "application/x-foo"}}

	mt, enc := tbl.GuessType("a.FOO")
	assert.Equal(t, "application/x-foo", mt)
	assert.Equal(t, "", enc)

	mt, _ = tbl.GuessType("a.png")
	assert.Equal(t, "", mt)
}

func TestTable_FallbackStripsParameters(t *testing.T) {
	t.Parallel()

	// the standard library reports text/html; charset=utf-8 for .html
	tbl := &mimetype.Table{Fallback: true}
	mt, _ := tbl.GuessType("index.html")
	assert.Equal(t, "text/html", mt)
}

func TestUnknownAndFunc(t *testing.T) {
	t.Parallel()

	mt, enc := mimetype.Unknown.GuessType("x.png")
	assert.Equal(t, "", mt)
	assert.Equal(t, "", enc)

	g := mimetype.GuesserFunc(func(name string) (string, string) {
		return "text/x-" + name, ""
	})
	mt, _ = g.GuessType("thing")
	assert.Equal(t, "text/x-thing", mt)
}
