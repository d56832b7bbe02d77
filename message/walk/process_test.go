package walk_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/postbox/message"
	"github.com/zostay/postbox/message/walk"
)

func leaf(mt, filename string) message.Part {
	op := &message.Opaque{Reader: strings.NewReader("x")}
	op.SetMediaType(mt)
	if filename != "" {
		op.SetPresentation("attachment")
		_ = op.SetFilename(filename)
	}
	return op
}

// complexMsg builds mixed(alternative(html, plain), pdf, gif).
func complexMsg(t *testing.T) message.Part {
	t.Helper()

	alt := &message.Buffer{}
	alt.SetMediaType("multipart/alternative")
	alt.Add(leaf("text/html", ""), leaf("text/plain", ""))
	altMsg, err := alt.Multipart()
	require.NoError(t, err)

	mixed := &message.Buffer{}
	mixed.SetSubject("Hello World")
	mixed.SetMediaType("multipart/mixed")
	mixed.Add(altMsg, leaf("application/pdf", "micro.pdf"), leaf("image/gif", "att-1.gif"))
	m, err := mixed.Multipart()
	require.NoError(t, err)

	return m
}

func TestAndProcess(t *testing.T) {
	t.Parallel()

	m := complexMsg(t)

	counts := make([]int, 10)
	err := walk.AndProcess(
		func(part message.Part, parents []message.Part) error {
			count := counts[len(parents)]
			switch {
			case len(parents) == 0 && count == 0:
				assert.True(t, part.IsMultipart())
				assert.Len(t, part.GetParts(), 3)

				s, err := part.GetHeader().GetSubject()
				assert.NoError(t, err)
				assert.Equal(t, "Hello World", s)
			case len(parents) == 1 && count == 0:
				assert.True(t, part.IsMultipart())
				assert.Len(t, part.GetParts(), 2)
			case len(parents) == 1 && count == 1:
				assert.False(t, part.IsMultipart())

				fn, err := part.GetHeader().GetFilename()
				assert.NoError(t, err)
				assert.Equal(t, "micro.pdf", fn)
			case len(parents) == 1 && count == 2:
				assert.False(t, part.IsMultipart())

				fn, err := part.GetHeader().GetFilename()
				assert.NoError(t, err)
				assert.Equal(t, "att-1.gif", fn)
			case len(parents) == 2 && count == 0:
				mt, err := part.GetHeader().GetMediaType()
				assert.NoError(t, err)
				assert.Equal(t, "text/html", mt)
			case len(parents) == 2 && count == 1:
				mt, err := part.GetHeader().GetMediaType()
				assert.NoError(t, err)
				assert.Equal(t, "text/plain", mt)
			default:
				assert.Fail(t, "Unexpected part processed")
			}

			counts[len(parents)]++
			return nil
		}, m,
	)

	assert.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2, 0, 0, 0, 0, 0, 0, 0}, counts)
}

func TestAndProcessOpaque(t *testing.T) {
	t.Parallel()

	var types []string
	err := walk.AndProcessOpaque(
		func(part message.Part, parents []message.Part) error {
			assert.False(t, part.IsMultipart())
			mt, _ := part.GetHeader().GetMediaType()
			types = append(types, mt)
			return nil
		}, complexMsg(t),
	)

	assert.NoError(t, err)
	assert.Equal(t, []string{"text/html", "text/plain", "application/pdf", "image/gif"}, types)
}

func TestAndProcessMultipart(t *testing.T) {
	t.Parallel()

	var types []string
	err := walk.AndProcessMultipart(
		func(part message.Part, parents []message.Part) error {
			assert.True(t, part.IsMultipart())
			mt, _ := part.GetHeader().GetMediaType()
			types = append(types, mt)
			return nil
		}, complexMsg(t),
	)

	assert.NoError(t, err)
	assert.Equal(t, []string{"multipart/mixed", "multipart/alternative"}, types)
}

func TestAndProcess_StopsOnError(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	calls := 0
	err := walk.AndProcess(
		func(part message.Part, parents []message.Part) error {
			calls++
			if len(parents) == 2 {
				return stop
			}
			return nil
		}, complexMsg(t),
	)

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 3, calls)
}
