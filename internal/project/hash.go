package project

import (
	"crypto/sha256"
	"encoding/hex"

	"veryl/internal/source"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Short returns the first 12 hex digits.
func (d Digest) Short() string { return d.String()[:12] }

// Combine строит хеш: H( first || rest1 || rest2 ... ).
// Порядок должен быть детерминированным.
func Combine(first Digest, rest ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(first[:])
	for _, d := range rest {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Fingerprint identifies the analyzed input: project name plus the contents
// of every file in commit order.
func Fingerprint(name string, files []*source.File) Digest {
	seed := Digest(sha256.Sum256([]byte(name)))
	hashes := make([]Digest, 0, len(files))
	for _, f := range files {
		if f == nil {
			continue
		}
		hashes = append(hashes, Digest(f.Hash))
	}
	return Combine(seed, hashes...)
}
