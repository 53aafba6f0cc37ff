package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/webserver/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "203.0.113.7:52100",
			want:       "203.0.113.7",
		},
		{
			name:       "cloudflare ipv6 wins over everything",
			headers:    map[string]string{"CF-Connecting-IPv6": "2001:db8::1", "X-Forwarded-For": "198.51.100.1", "CF-Connecting-IP": "198.51.100.2"},
			remoteAddr: "10.0.0.1:1234",
			want:       "2001:db8::1",
		},
		{
			name:       "forwarded for before cloudflare ipv4",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.2", "CF-Connecting-IP": "198.51.100.2"},
			remoteAddr: "10.0.0.1:1234",
			want:       "198.51.100.1",
		},
		{
			name:       "cloudflare ipv4",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.2"},
			remoteAddr: "10.0.0.1:1234",
			want:       "198.51.100.2",
		},
		{
			name:       "real ip",
			headers:    map[string]string{"X-Real-IP": "198.51.100.3"},
			remoteAddr: "10.0.0.1:1234",
			want:       "198.51.100.3",
		},
		{
			name:       "invalid header falls through",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip", "X-Real-IP": "198.51.100.3"},
			remoteAddr: "10.0.0.1:1234",
			want:       "198.51.100.3",
		},
		{
			name:       "unspecified header falls through",
			headers:    map[string]string{"CF-Connecting-IP": "0.0.0.0"},
			remoteAddr: "10.0.0.1:1234",
			want:       "10.0.0.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "::1",
			want:       "::1",
		},
		{
			name:       "nothing usable",
			remoteAddr: "garbage",
			want:       clientip.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}
