package transfer

import (
	"io"

	"github.com/zostay/postbox/message/header"
)

// NewAsIsEncoder returns an io.WriteCloser that writes bytes as-is. The
// break is ignored.
func NewAsIsEncoder(w io.Writer, _ header.Break) io.WriteCloser {
	return &writer{w, nil}
}
