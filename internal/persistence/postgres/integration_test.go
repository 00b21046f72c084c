//go:build integration
// +build integration

package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_integration(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN is not set")
	}

	db, err := NewDatabase(dsn)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = db.Start(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
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
