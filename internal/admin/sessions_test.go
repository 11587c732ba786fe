package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifier(t *testing.T) {
	v := Verifier{Username: "freshflower", Password: "admin123"}

	assert.True(t, v.Verify("freshflower", "admin123"))
	assert.False(t, v.Verify("freshflower", "admin124"))
	assert.False(t, v.Verify("Freshflower", "admin123"))
	assert.False(t, v.Verify("", ""))
}
