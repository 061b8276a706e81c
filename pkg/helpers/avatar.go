package helpers

import (
	"crypto/md5"
	"encoding/hex"
)

// AvatarURL derives the deterministic Gravatar reference for an email.
// The email must already be normalized (trimmed, lowercased); equal
// emails always map to the same URL.
func AvatarURL(email string) string {
	sum := md5.Sum([]byte(email))
	return "https://gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=128"
}
