package helpers

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// GravatarURL builds the gravatar image URL for an email address. Used as the
// default avatar on signup; uploads replace it later.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?d=identicon"
}
