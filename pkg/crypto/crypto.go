package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomAlphabet returns a random alphanumeric string of length n,
// suitable for referral codes.
func GenerateRandomAlphabet(n uint) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[RandIntn(len(alphabet))]
	}
	return string(b)
}

// SHA256Sum returns the raw digest of b.
func SHA256Sum(b []byte) []byte {
	hashed := sha256.Sum256(b)
	return hashed[:]
}

// HMAC computes a keyed digest of data and returns it hex encoded.
func HMAC(hashFunc func() hash.Hash, data []byte, secret []byte) string {
	h := hmac.New(hashFunc, secret)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// HMACEqual compares a computed hex HMAC against a supplied one in constant
// time.
func HMACEqual(computed, supplied string) bool {
	return hmac.Equal([]byte(computed), []byte(supplied))
}

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}
