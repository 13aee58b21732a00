package project

import (
	"crypto/sha256"
	"encoding/binary"

	"recast/internal/source"
)

// Digest is a SHA-256 value, the same size as source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by deps. The order of deps matters.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Of hashes a string.
func Of(s string) Digest { return sha256.Sum256([]byte(s)) }

// InputsDigest keys a run by every file's path and content, in file order,
// followed by settings.
func InputsDigest(files *source.FileSet, settings ...string) Digest {
	var parts []Digest
	for _, f := range files.Files() {
		parts = append(parts, Of(f.Path), f.Hash)
	}
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(settings)))
	seed := sha256.Sum256(n[:])
	for _, s := range settings {
		parts = append(parts, Of(s))
	}
	return Combine(seed, parts...)
}
