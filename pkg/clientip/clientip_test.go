package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/familyspace/pkg/clientip"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       []clientip.Option
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "203.0.113.7:51234",
			want:       "203.0.113.7",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "garbage remote addr",
			remoteAddr: "not-an-ip",
			want:       "",
		},
		{
			name:       "untrusted headers are ignored",
			remoteAddr: "10.0.0.1:1000",
			headers:    map[string]string{clientip.HeaderForwardedFor: "198.51.100.1"},
			want:       "10.0.0.1",
		},
		{
			name:       "forwarded for picks first valid entry",
			opts:       []clientip.Option{clientip.WithProxyHeaders()},
			remoteAddr: "10.0.0.1:1000",
			headers:    map[string]string{clientip.HeaderForwardedFor: "junk, 198.51.100.1, 198.51.100.2"},
			want:       "198.51.100.1",
		},
		{
			name:       "cloudflare wins over forwarded for",
			opts:       []clientip.Option{clientip.WithProxyHeaders()},
			remoteAddr: "10.0.0.1:1000",
			headers: map[string]string{
				clientip.HeaderCloudflare:   "192.0.2.5",
				clientip.HeaderForwardedFor: "198.51.100.1",
			},
			want: "192.0.2.5",
		},
		{
			name:       "invalid header falls through",
			opts:       []clientip.Option{clientip.WithProxyHeaders(clientip.HeaderRealIP)},
			remoteAddr: "10.0.0.1:1000",
			headers:    map[string]string{clientip.HeaderRealIP: "999.1.1.1"},
			want:       "10.0.0.1",
		},
		{
			name:       "only listed headers are trusted",
			opts:       []clientip.Option{clientip.WithProxyHeaders(clientip.HeaderRealIP)},
			remoteAddr: "10.0.0.1:1000",
			headers: map[string]string{
				clientip.HeaderCloudflare: "192.0.2.5",
				clientip.HeaderRealIP:     " 192.0.2.9 ",
			},
			want: "192.0.2.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.New(tt.opts...).Resolve(r))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got, key string
	h := clientip.New().Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
		key = clientip.KeyFunc(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:9999"
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "192.0.2.1", got)
	assert.Equal(t, got, key)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := clientip.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(clientip.WithIP(context.Background(), "192.0.2.1"))
	require.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)
	assert.Equal(t, "192.0.2.1", attr.Value.String())
}
