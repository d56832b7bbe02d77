package message_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/postbox/message"
)

var boundaryMatch = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

func TestGenerateBoundary(t *testing.T) {
	t.Parallel()

	b := message.GenerateBoundary()
	assert.Len(t, b, message.BoundaryLength)
	assert.Regexp(t, boundaryMatch, b)
	assert.NotEqual(t, b, message.GenerateBoundary())
}

func TestGenerateSafeBoundary(t *testing.T) {
	t.Parallel()

	b := message.GenerateBoundary()
	nb := message.GenerateSafeBoundary([]byte("--"+b+"\r\n"), []byte("other body"))
	assert.Len(t, nb, message.BoundaryLength)
	assert.Regexp(t, boundaryMatch, nb)
	assert.NotEqual(t, b, nb)

	assert.Len(t, message.GenerateSafeBoundary(), message.BoundaryLength)
}
