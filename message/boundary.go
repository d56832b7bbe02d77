package message

import (
	"bytes"
	"math/rand"
)

// BoundaryLength is the length of the boundaries made by GenerateBoundary.
const BoundaryLength = 30

const boundaryAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateBoundary returns a random multipart boundary made of
// BoundaryLength letters and digits. Such a boundary never needs quoting in
// a Content-type parameter.
func GenerateBoundary() string {
	b := make([]byte, BoundaryLength)
	for i := range b {
		b[i] = boundaryAlphabet[rand.Intn(len(boundaryAlphabet))]
	}
	return string(b)
}

// GenerateSafeBoundary returns a boundary from GenerateBoundary that does not
// occur anywhere in the given encoded part bodies. A random boundary is
// already vanishingly unlikely to collide, so this is only worth it when the
// bodies are at hand anyway.
func GenerateSafeBoundary(bodies ...[]byte) string {
	for {
		boundary := GenerateBoundary()

		collides := false
		for _, body := range bodies {
			if bytes.Contains(body, []byte(boundary)) {
				collides = true
				break
			}
		}

		if !collides {
			return boundary
		}
	}
}
