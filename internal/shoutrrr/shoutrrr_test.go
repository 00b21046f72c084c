package shoutrrr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_addDefaultTitle(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		address        string
		defaultTitle   string
		updatedAddress string
	}{
		"generic_with_empty_title": {
			address:        "generic://example.com?title=",
			defaultTitle:   "Find your IP",
			updatedAddress: "generic://example.com?title=",
		},
		"generic_with_title": {
			address:        "generic://example.com?title=MyTitle",
			defaultTitle:   "Find your IP",
			updatedAddress: "generic://example.com?title=MyTitle",
		},
		"generic_without_title": {
			address:        "generic://example.com",
			defaultTitle:   "Find your IP",
			updatedAddress: "generic://example.com?title=Find+your+IP",
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			updatedAddress := addDefaultTitle(testCase.address, testCase.defaultTitle)

			assert.Equal(t, testCase.updatedAddress, updatedAddress)
		})
	}
}

func Test_New(t *testing.T) {
	t.Parallel()

	client, err := New(Settings{})
	require.NoError(t, err)
	assert.Nil(t, client.serviceRouter)
	client.Notify("does nothing")

	client, err = New(Settings{Addresses: []string{"generic://example.com"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"generic"}, client.serviceNames)

	_, err = New(Settings{Addresses: []string{"unknownservice://x"}})
	assert.Error(t, err)
}
