package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	first := Fingerprint([]byte("include(\":app\")"), []byte("plugins {}"))
	assert.Len(t, first, 64)
	assert.Equal(t, first, Fingerprint([]byte("include(\":app\")"), []byte("plugins {}")))

	// Moving bytes between parts must change the fingerprint.
	assert.NotEqual(t, first, Fingerprint([]byte("include(\":app\")plugins"), []byte(" {}")))
	assert.NotEqual(t, first, Fingerprint([]byte("include(\":app\")")))
}
