// Package privacy pseudonymizes person identifiers before they reach logs,
// audit events or statistics topics.
package privacy

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"supstonad/pkg/domain"
)

// Hasher produces stable keyed digests so the same person maps to the same
// token without the raw fnr leaving the service.
type Hasher struct {
	key []byte
}

// NewHasher accepts keys up to 64 bytes; longer keys are truncated.
func NewHasher(key []byte) *Hasher {
	if len(key) > blake2b.Size {
		key = key[:blake2b.Size]
	}
	return &Hasher{key: append([]byte(nil), key...)}
}

// Fnr returns a hex-encoded 128-bit keyed digest of fnr.
func (h *Hasher) Fnr(fnr domain.Fnr) string {
	if fnr == "" {
		return ""
	}
	mac, err := blake2b.New(16, h.key)
	if err != nil {
		return ""
	}
	_, _ = mac.Write([]byte(fnr))
	return hex.EncodeToString(mac.Sum(nil))
}

// MaskFnr keeps the birth date part and hides the personal number.
func MaskFnr(fnr domain.Fnr) string {
	if len(fnr) != 11 {
		return "***********"
	}
	return string(fnr[:6]) + "*****"
}
