package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mboxlib "github.com/emersion/go-mbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestTestPNG(t *testing.T) {
	b, err := testPNG()
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestSamples(t *testing.T) {
	msgs, err := Samples("a@example.com", "b@example.com")
	require.NoError(t, err)
	require.Len(t, msgs, 6)

	for _, m := range msgs {
		env, err := m.Compile()
		require.NoError(t, err, m.String())
		assert.Equal(t, "a@example.com", env.Sender)
		assert.Equal(t, []string{"b@example.com"}, env.Recipients)
	}
}

func TestSelectSamples(t *testing.T) {
	picked, err := selectSamples([]string{"2", "6"})
	require.NoError(t, err)
	require.Len(t, picked, 2)

	s, _ := picked[0].Subject()
	assert.Equal(t, "2 - HTML", s)

	_, err = selectSamples([]string{"7"})
	assert.Error(t, err)

	_, err = selectSamples([]string{"two"})
	assert.Error(t, err)
}

func TestTree(t *testing.T) {
	out := run(t, "tree", "1", "5")

	assert.Equal(t, ""+
		"# 1 - Plain Text\n"+
		"text/plain 7bit inline\n"+
		"# 5 - Inline Image & Attachment\n"+
		"multipart/mixed\n"+
		"  multipart/related\n"+
		"    multipart/alternative\n"+
		"      text/plain 7bit inline\n"+
		"      text/html 7bit inline\n"+
		"    image/png base64 inline id=foo.png\n"+
		"  image/png base64 attachment filename=attached.png\n",
		out)
}

func TestDump(t *testing.T) {
	out := run(t, "dump", "6")

	assert.Contains(t, out, "MAIL FROM: Postbox Sample <sample@example.com>\n")
	assert.Contains(t, out, "RCPT TO: recipient@example.com\n")
	assert.Contains(t, out, "Subject: =?utf-8?")
	assert.Contains(t, out, "Content-Type: multipart/alternative;")
	assert.Contains(t, out, "Content-Transfer-Encoding: quoted-printable\n")
	assert.NotContains(t, out, "\r")
}

func TestSend_Mbox(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.mbox")
	t.Setenv("POSTBOX_TRANSPORT", "mbox")
	t.Setenv("POSTBOX_MBOX_PATH", path)

	run(t, "send", "1", "2", "3")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var subjects []string
	mr := mboxlib.NewReader(f)
	for {
		m, err := mr.NextMessage()
		if err != nil {
			break
		}
		var buf bytes.Buffer
		_, err = buf.ReadFrom(m)
		require.NoError(t, err)
		for _, line := range strings.Split(buf.String(), "\n") {
			if strings.HasPrefix(line, "Subject: ") {
				subjects = append(subjects, strings.TrimPrefix(line, "Subject: "))
			}
		}
	}

	assert.Equal(t, []string{"1 - Plain Text", "2 - HTML", "3 - Inline Image"}, subjects)
}
