// Package integrity computes and verifies the message-authentication digest
// shared between the capture device and the server.
package integrity

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"strings"
)

// Codec produces the integrity stamp over concatenated protocol fields.
//
// The digest primitive is injected so it can be swapped for a stronger one
// without changing the protocol shape. The paired device firmware computes
// MD5, so MD5 is the default; the stamp only authenticates possession of
// the vendor key, it is not used for collision resistance.
type Codec struct {
	newHash func() hash.Hash
}

// New returns a Codec using the given hash constructor.
func New(newHash func() hash.Hash) *Codec {
	return &Codec{newHash: newHash}
}

// Default returns a Codec using MD5, the primitive the device firmware implements.
func Default() *Codec {
	return New(md5.New)
}

// Digest concatenates parts in order and returns the lowercase hex digest.
// It is pure: identical inputs always produce identical output.
func (c *Codec) Digest(parts ...string) string {
	h := c.newHash()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Equal reports whether two stamps match. The device upper-cases its stamp
// output, so comparison is case-insensitive.
func (c *Codec) Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}
