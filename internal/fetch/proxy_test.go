package fetch

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.local:3128", "", "intern.example.nl")

	req, err := http.NewRequest(http.MethodGet, "https://www.example.nl/jaarverslag.pdf", nil)
	require.NoError(t, err)
	u, err := proxy(req)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "proxy.local:3128", u.Host)

	req, err = http.NewRequest(http.MethodGet, "http://intern.example.nl/a.pdf", nil)
	require.NoError(t, err)
	u, err = proxy(req)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestNewProxyFunc_SeparateHTTPS(t *testing.T) {
	proxy := NewProxyFunc("http://plain:8080", "http://secure:8443", "")

	req, _ := http.NewRequest(http.MethodGet, "https://www.example.nl/", nil)
	u, err := proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "secure:8443", u.Host)

	req, _ = http.NewRequest(http.MethodGet, "http://www.example.nl/", nil)
	u, err = proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "plain:8080", u.Host)
}
