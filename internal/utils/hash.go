package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// Signer computes keyed HMAC-SHA256 signatures over outbound change payloads.
// Hash instances are pooled so that a large slow-sync batch does not
// allocate a new HMAC per record.
//
// A nil *Signer or one created with an empty key signs nothing: Sign returns
// an empty string.
type Signer struct {
	pool sync.Pool
	on   bool
}

// NewSigner returns a Signer keyed with hashKey.
//
// Example usage:
//
//	signer := utils.NewSigner("my-secret-key")
//	header := signer.Sign(body)
func NewSigner(hashKey string) *Signer {
	s := &Signer{on: hashKey != ""}
	s.pool.New = func() any {
		return hmac.New(sha256.New, []byte(hashKey))
	}
	return s
}

// Enabled reports whether the signer has a key.
func (s *Signer) Enabled() bool {
	return s != nil && s.on
}

// Sum returns the raw HMAC-SHA256 digest of data.
func (s *Signer) Sum(data []byte) []byte {
	if !s.Enabled() {
		return nil
	}

	h := s.pool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	s.pool.Put(h)

	return sum
}

// Sign returns the hex-encoded HMAC-SHA256 digest of data.
func (s *Signer) Sign(data []byte) string {
	if !s.Enabled() {
		return ""
	}
	return hex.EncodeToString(s.Sum(data))
}

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// Unlike Signer, this function creates a new HMAC instance on each call.
// Suitable for one-off verification, for example in tests of a receiving
// endpoint.
//
// Example usage:
//
//	signature := utils.HashString("some data", "my-secret-key")
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
