package cmd

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"

	"github.com/zostay/postbox/compose"
)

// testPNG draws a small blue to grey gradient.
func testPNG() ([]byte, error) {
	const w, h = 100, 50

	blue := color.RGBA{B: 0xff, A: 0xff}
	grey := color.RGBA{R: 0xbe, G: 0xbe, B: 0xbe, A: 0xff}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		mix := func(a, b uint8) uint8 {
			return uint8((int(a)*(h-1-y) + int(b)*y) / (h - 1))
		}
		c := color.RGBA{
			R: mix(blue.R, grey.R),
			G: mix(blue.G, grey.G),
			B: mix(blue.B, grey.B),
			A: 0xff,
		}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Samples returns the six sample messages, each exercising a different
// shape: plain text, HTML, an inline image, an attachment, both of those,
// and non-ASCII text throughout.
func Samples(from, to string) ([]*compose.Message, error) {
	img, err := testPNG()
	if err != nil {
		return nil, fmt.Errorf("draw test image: %w", err)
	}

	base := func(subject string, opts ...compose.Option) *compose.Message {
		return compose.New(append([]compose.Option{
			compose.From(from),
			compose.To(to),
			compose.Subject(subject),
		}, opts...)...)
	}

	return []*compose.Message{
		base("1 - Plain Text",
			compose.Body("Plain text mail body")),
		base("2 - HTML",
			compose.Body("Plain text of HTML mail"),
			compose.HTML("<h1>HTML</h1>text<i>styled</i>")),
		base("3 - Inline Image",
			compose.HTML(`Image <img src="cid:foo.png"> inline`),
			compose.Inline("foo.png", img, "")),
		base("4 - Attachment",
			compose.Attachment("attached.png", img, "")),
		base("5 - Inline Image & Attachment",
			compose.Body("plain body"),
			compose.HTML(`Image <img src="cid:foo.png"> inline`),
			compose.Inline("foo.png", img, ""),
			compose.Attachment("attached.png", img, "")),
		base("6 - Unicode Üñïçøδè",
			compose.Body("O, A and U umlauts: ÖÄÜ"),
			compose.HTML("Bold O, A and U umlaut: <b>ÖÄÜ</b>")),
	}, nil
}

// selectSamples returns the samples named by number in args, or all of them
// when args is empty.
func selectSamples(args []string) ([]*compose.Message, error) {
	all, err := Samples(fromAddr, toAddr)
	if err != nil {
		return nil, err
	}

	if len(args) == 0 {
		return all, nil
	}

	picked := make([]*compose.Message, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(all) {
			return nil, fmt.Errorf("no sample %q: pick 1 to %d", arg, len(all))
		}
		picked = append(picked, all[n-1])
	}

	return picked, nil
}
