package message

import (
	"io"

	"github.com/zostay/postbox/message/header"
)

// Part is an interface define the parts of a Multipart. Each Part is
// either a branch or a leaf.
//
// A branch Part is one that has sub-parts. In this case, the IsMultipart()
// method will return true. The GetParts() method is available, but the
// GetReader() will return nil.
//
// A leaf Part is one that contains content. In this case, the IsMultipart()
// method will return false. The GetParts() method will return nil and the
// GetReader() method will return a reader for reading the content of the
// part, before transfer encoding.
type Part interface {
	io.WriterTo

	// IsMultipart will return true if this Part is a branch with nested
	// parts.
	IsMultipart() bool

	// GetHeader is available on all Part objects.
	GetHeader() *header.Header

	// GetReader provides the content of the message, but only if
	// IsMultipart() returns false. This must return nil if IsMultipart()
	// returns true.
	GetReader() io.Reader

	// GetParts provides the sub-parts of a multipart message. This must
	// return nil if IsMultipart() is false.
	GetParts() []Part
}
