//go:build integration
// +build integration

package redis

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_integration(t *testing.T) {
	address := os.Getenv("REDIS_ADDRESS")
	if address == "" {
		t.Skip("REDIS_ADDRESS is not set")
	}

	db, err := NewDatabase(Settings{
		Address: address,
		Key:     "findyourip:test:" + t.Name(),
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = db.Start(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.client.Del(context.Background(), db.key).Err()
		_ = db.Stop()
	})

	err = db.Write(ctx, 5)
	require.NoError(t, err)

	newCount, err := db.Increment(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), newCount)

	count, err := db.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), count)
}
