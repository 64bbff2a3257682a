package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Codec signs and verifies webhook bodies with HMAC-SHA256 over the exact
// raw bytes received. Re-serializing the payload before verification would
// change the byte sequence and break signatures, so callers must pass the
// body untouched.
type Codec struct {
	secret []byte
}

// NewCodec builds Codec with the shared provider secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Sign computes the hex-encoded HMAC-SHA256 of body.
func (c *Codec) Sign(body []byte) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether sig matches body using a constant-time comparison.
// Malformed signature encodings verify as false, never as an error.
func (c *Codec) Verify(body []byte, sig string) bool {
	provided, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), provided)
}
