package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringToSlug(t *testing.T) {
	assert.Equal(t, "order-shipped", StringToSlug("Order Shipped"))
	assert.Equal(t, "my-playbook-v2", StringToSlug("  My Playbook (v2)! "))
	assert.Equal(t, "abc", StringToSlug("---abc---"))
	assert.Equal(t, "", StringToSlug("!!!"))
}

func TestGenerateRandomString(t *testing.T) {
	id := GenerateRandomString(12)
	assert.Len(t, id, 12)

	for _, r := range id {
		assert.True(t, strings.ContainsRune(randomAlphabet, r), "unexpected rune %q", r)
	}

	assert.NotEqual(t, GenerateRandomString(12), GenerateRandomString(12))
}

func TestSchemaColor(t *testing.T) {
	assert.Equal(t, "#a456e5", SchemaColor("integer"))
	assert.Equal(t, "#a456e5", SchemaColor("number"))
	assert.Equal(t, "#2bb74a", SchemaColor("string"))
	assert.Equal(t, "#f1ee07", SchemaColor("array"))
	assert.Equal(t, "#FF4747", SchemaColor("boolean"))
	assert.Equal(t, "#ffffff", SchemaColor("null"))
	assert.Equal(t, "#ffffff", SchemaColor(""))
}
