package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuilderIDFromSubject(t *testing.T) {
	id, err := parseBuilderIDFromSubject("sera.builder.42")
	require.NoError(t, err)
	assert.Equal(t, "42", id)

	id, err = parseBuilderIDFromSubject("sera.builder.order-shipped")
	require.NoError(t, err)
	assert.Equal(t, "order-shipped", id)

	_, err = parseBuilderIDFromSubject("sera.builder")
	assert.Error(t, err)

	_, err = parseBuilderIDFromSubject("sera.builder.42.extra")
	assert.Error(t, err)

	_, err = parseBuilderIDFromSubject("sera.builder.")
	assert.Error(t, err)
}
