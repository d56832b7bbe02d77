package compose_test

import (
	"bytes"
	"fmt"
	"io"
	"testing"
	"time"

	gomessage "github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/stretchr/testify/require"

	"github.com/zostay/postbox/compose"
)

var testDate = time.Date(2023, 3, 14, 15, 9, 26, 0, time.UTC)

// fixed returns options for a deterministic compile. Boundaries are b1, b2,
// ... in the order the containers are built.
func fixed(opts ...compose.CompileOption) []compose.CompileOption {
	n := 0
	return append([]compose.CompileOption{
		compose.WithClock(func() time.Time { return testDate }),
		compose.WithBoundaryGenerator(func() string {
			n++
			return fmt.Sprintf("b%d", n)
		}),
	}, opts...)
}

// shape describes a parsed part tree as media types, with sub-parts nested.
type shape struct {
	MediaType string
	Params    map[string]string
	Header    gomessage.Header
	Body      string
	Parts     []shape
}

func parse(t *testing.T, doc []byte) shape {
	t.Helper()

	e, err := gomessage.Read(bytes.NewReader(doc))
	require.NoError(t, err)
	return shapeOf(t, e)
}

func shapeOf(t *testing.T, e *gomessage.Entity) shape {
	t.Helper()

	mt, params, err := e.Header.ContentType()
	require.NoError(t, err)

	s := shape{MediaType: mt, Params: params, Header: e.Header}

	if mr := e.MultipartReader(); mr != nil {
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			s.Parts = append(s.Parts, shapeOf(t, p))
		}
		return s
	}

	b, err := io.ReadAll(e.Body)
	require.NoError(t, err)
	s.Body = string(b)

	return s
}

func (s shape) types() []string {
	ts := make([]string, len(s.Parts))
	for i, p := range s.Parts {
		ts[i] = p.MediaType
	}
	return ts
}
