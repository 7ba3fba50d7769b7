package credentials

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashWithSalt derives the stored password digest: sha256 over the salt
// followed by the secret, rendered as lowercase hex. Deterministic by
// contract — the authenticator matches digests inside a single store query,
// so the same (secret, salt) pair must always produce the same output.
//
// The salt is one process-wide value, not per-record, and sha256 is a fast
// general-purpose hash. Both are known weaknesses of the stored format;
// changing either would strand every existing digest, so they stay.
func HashWithSalt(secret, salt string) string {
	sum := sha256.Sum256([]byte(salt + secret))
	return hex.EncodeToString(sum[:])
}
