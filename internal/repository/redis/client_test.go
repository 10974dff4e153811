package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedis_UnreachableDisablesCache(t *testing.T) {
	// nothing listens on port 1
	require.NoError(t, InitRedis("127.0.0.1:1", ""))
	assert.False(t, IsRedisEnabled())
	assert.NoError(t, CloseRedis())
}
