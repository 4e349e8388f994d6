package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_EmptyAddrDisables(t *testing.T) {
	client, err := NewRedisClient("", "", 0)
	require.NoError(t, err)

	assert.False(t, client.IsEnabled())
	assert.Nil(t, client.GetClient())
	assert.NoError(t, client.Close())
}

func TestNewRedisClient_UnreachableAddrFallsBack(t *testing.T) {
	// Port 1 is never listening; the dial fails immediately
	client, err := NewRedisClient("127.0.0.1:1", "", 0)
	require.Error(t, err)
	require.NotNil(t, client)

	// The disabled wrapper carries no live pool
	assert.False(t, client.IsEnabled())
	assert.Nil(t, client.GetClient())
	assert.Equal(t, false, client.GetPoolStats()["enabled"])
	assert.Error(t, client.HealthCheck(context.Background()))
	assert.NoError(t, client.Close())
}
