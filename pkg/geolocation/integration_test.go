//go:build integration

package geolocation

import (
	"context"
	"net/http"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_integration(t *testing.T) {
	t.Parallel()

	client := &http.Client{Timeout: 10 * time.Second}

	for _, provider := range ListProviders() {
		t.Run(string(provider), func(t *testing.T) {
			t.Parallel()

			geolocation, err := New(client, SetProviders(provider))
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			result, err := geolocation.Locate(ctx, netip.MustParseAddr("8.8.8.8"))
			require.NoError(t, err)

			assert.Equal(t, "8.8.8.8", result.IP.String())
			assert.NotEmpty(t, result.Country)
			assert.Equal(t, string(provider), result.Source)
		})
	}
}
