package header

import (
	"strings"

	"github.com/zostay/postbox/message/header/field"
)

// EncodeAddress encodes the display name of an address of the form
// "Name <address>" for use in a header. Only the text before the first " <"
// is encoded; the rest is kept as-is. A string without " <" is taken to be a
// bare address and returned unchanged, since the address itself must remain
// ASCII.
//
// No other validation is performed. Malformed input passes through with its
// structure intact.
func EncodeAddress(address, charset string) string {
	name, rest, found := strings.Cut(address, " <")
	if !found {
		return address
	}

	return field.Encode(name, charset) + " <" + rest
}

// EncodeAddressList encodes each address with EncodeAddress and joins them
// into a single header field body separated by ", ".
func EncodeAddressList(addresses []string, charset string) string {
	encoded := make([]string, len(addresses))
	for i, a := range addresses {
		encoded[i] = EncodeAddress(a, charset)
	}
	return strings.Join(encoded, ", ")
}
