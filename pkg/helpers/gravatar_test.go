package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURL(t *testing.T) {
	url := GravatarURL("user@example.com")
	assert.Equal(t, "https://www.gravatar.com/avatar/b58996c504c5638798eb6b511e6f49af?d=identicon", url)

	// case and surrounding whitespace must not change the hash
	assert.Equal(t, url, GravatarURL("  User@Example.COM  "))
}
