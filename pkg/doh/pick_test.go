package doh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_pickProvider(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "single", pickProvider([]string{"single"}))

	providers := []string{"a", "b"}
	picked := make(map[string]struct{}, len(providers))
	for i := 0; i < 200 && len(picked) < len(providers); i++ {
		picked[pickProvider(providers)] = struct{}{}
	}
	assert.Len(t, picked, len(providers))
}
