package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstance(t *testing.T) {
	inst, err := ParseInstance("collection-store", "10.0.0.5:8000")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", inst.Host)
	assert.Equal(t, 8000, inst.Port)
	assert.Equal(t, "http://10.0.0.5:8000", inst.BaseURL())

	v6, err := ParseInstance("collection-store", "[::1]:8000")
	require.NoError(t, err)
	assert.Equal(t, "[::1]:8000", v6.Addr())

	_, err = ParseInstance("collection-store", "10.0.0.5")
	assert.Error(t, err)
	_, err = ParseInstance("collection-store", "10.0.0.5:http")
	assert.Error(t, err)
}
