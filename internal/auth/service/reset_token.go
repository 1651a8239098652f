package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/danieltanr/webauth/pkg/constant"
)

// newResetToken returns a fresh reset token and its digest. The plaintext is
// emailed to the user and exists nowhere else; only the digest is persisted.
func newResetToken() (plaintext, digest string, err error) {
	buf := make([]byte, constant.ResetTokenByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}

	plaintext = hex.EncodeToString(buf)
	return plaintext, hashResetToken(plaintext), nil
}

// hashResetToken computes the stored form of a reset token. Redemption hashes
// the submitted plaintext with the same digest before lookup.
func hashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
