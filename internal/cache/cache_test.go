package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c PageCache = Noop{}

	require.NoError(t, c.SetPage(ctx, "acme", []byte(`{"company":{}}`)))

	payload, hit, err := c.GetPage(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, payload)

	assert.NoError(t, c.InvalidatePage(ctx, "acme"))
}
