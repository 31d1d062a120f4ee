package ipinfo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("203.0.113.7\n"))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	ip, err := c.Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", ip)
}

func TestLookup_NonAddressResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>nope</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	_, err := c.Lookup(context.Background())
	assert.Error(t, err)
}

func TestLookup_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	_, err := c.Lookup(context.Background())
	assert.Error(t, err)
}

func TestLookupOrUnknown_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte("203.0.113.7"))
	}))
	defer srv.Close()

	c := New(srv.URL, 50*time.Millisecond)
	assert.Equal(t, Unknown, c.LookupOrUnknown(context.Background()))
}

func TestLookupOrUnknown_Unreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", 100*time.Millisecond)
	assert.Equal(t, Unknown, c.LookupOrUnknown(context.Background()))
}
