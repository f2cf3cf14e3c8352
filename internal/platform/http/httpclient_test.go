package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	c := NewHTTPClient(30 * time.Second)

	assert.Equal(t, 30*time.Second, c.Timeout)
	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 10, tr.MaxIdleConnsPerHost)
	assert.NotNil(t, tr.Proxy)
	assert.NotSame(t, http.DefaultTransport, c.Transport)
}
