package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashString("abc"))
}

func TestHashEmail(t *testing.T) {
	a := HashEmail("Jane@Example.com")
	b := HashEmail("  jane@example.com ")

	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, HashEmail("john@example.com"))
	assert.Empty(t, HashEmail("   "))
}
