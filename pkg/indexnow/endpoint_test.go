package indexnow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriram-PR/index-now/pkg/utils"
)

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", EndpointIndexNow},
		{"indexnow", EndpointIndexNow},
		{"Bing", EndpointBing},
		{"microsoft_bing", EndpointBing},
		{"naver", EndpointNaver},
		{"seznam", EndpointSeznam},
		{" YANDEX ", EndpointYandex},
		{"yep", EndpointYep},
		{"https://search.example.org/indexnow", "https://search.example.org/indexnow"},
		{"http://127.0.0.1:8080/indexnow", "http://127.0.0.1:8080/indexnow"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ResolveEndpoint(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveEndpoint_Unknown(t *testing.T) {
	for _, input := range []string{"google", "ftp://example.com/indexnow", "://broken"} {
		_, err := ResolveEndpoint(input)
		require.Error(t, err, input)
		assert.ErrorIs(t, err, utils.ErrUnknownEndpoint)
	}
}

func TestEndpointNames(t *testing.T) {
	names := EndpointNames()
	assert.Contains(t, names, "bing")
	assert.Contains(t, names, "yep")
	assert.IsIncreasing(t, names)
}
