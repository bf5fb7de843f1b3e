package assethost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	// Digest of "public_id=abc123/team-photo&timestamp=1700000000000topsecret".
	sig := Signature("abc123/team-photo", 1700000000000, "topsecret")
	assert.Equal(t, "584e7f949cb1adfa60c91638ffe0dd8ef0deace0", sig)
}

func TestSignatureDependsOnEveryPart(t *testing.T) {
	base := Signature("abc123/team-photo", 1700000000000, "topsecret")
	assert.NotEqual(t, base, Signature("abc123/other", 1700000000000, "topsecret"))
	assert.NotEqual(t, base, Signature("abc123/team-photo", 1700000000001, "topsecret"))
	assert.NotEqual(t, base, Signature("abc123/team-photo", 1700000000000, "other"))
}
