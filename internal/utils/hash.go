package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// Hasher computes keyed HMAC-SHA256 fingerprints. Card numbers are looked up
// by fingerprint, so the same key must be used for the lifetime of the data.
//
// Hash instances are pooled to avoid an allocation per lookup.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher keyed with hashKey.
//
// Example usage:
//
//	h := utils.NewHasher(key)
//	fingerprint := h.HashString("4000123412341234")
func NewHasher(hashKey []byte) *Hasher {
	key := append([]byte(nil), hashKey...)
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Hash computes the HMAC-SHA256 digest of data.
func (h *Hasher) Hash(data []byte) []byte {
	hasher := h.pool.Get().(hash.Hash)
	hasher.Reset()

	hasher.Write(data)
	sum := hasher.Sum(nil)

	hasher.Reset()
	h.pool.Put(hasher)

	return sum
}

// HashString returns the hex-encoded HMAC-SHA256 digest of data.
func (h *Hasher) HashString(data string) string {
	return hex.EncodeToString(h.Hash([]byte(data)))
}

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// Unlike [Hasher], this function creates a new HMAC instance on each call.
func HashString(data string, hashKey []byte) string {
	hasher := hmac.New(sha256.New, hashKey)
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
