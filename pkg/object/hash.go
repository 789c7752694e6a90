package object

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashLen is the length of a full hex-encoded digest.
const HashLen = 64

// HashBytes computes the raw SHA-256 hash of data and returns it as a
// lowercase hex-encoded Hash.
func HashBytes(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashBlob computes the digest of a file snapshot. The path is part of the
// hash input, so identical bytes recorded under two paths get two digests.
func HashBlob(path string, data []byte) Hash {
	h := sha256.New()
	h.Write([]byte("blob "))
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// HashCommit computes a commit digest from its message and formatted
// timestamp only. Two commits with the same message and timestamp share a
// digest.
func HashCommit(message, timestamp string) Hash {
	h := sha256.New()
	h.Write([]byte("commit "))
	h.Write([]byte(message))
	h.Write([]byte{0})
	h.Write([]byte(timestamp))
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// IsFull reports whether h looks like a complete lowercase hex digest.
func (h Hash) IsFull() bool {
	if len(h) != HashLen {
		return false
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Short returns the first n characters of h, or all of h when shorter.
func (h Hash) Short(n int) string {
	if len(h) <= n {
		return string(h)
	}
	return string(h[:n])
}
