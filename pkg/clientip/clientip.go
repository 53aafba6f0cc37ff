package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Unknown is returned when no address can be determined.
const Unknown = "0.0.0.0"

// headers are checked in order; the first valid address wins.
var headers = []string{
	"CF-Connecting-IPv6",
	"X-Forwarded-For",
	"CF-Connecting-IP",
	"X-Real-IP",
}

// GetIP returns the client address of r. Proxy headers take precedence over
// the peer address; X-Forwarded-For contributes its leftmost entry.
func GetIP(r *http.Request) string {
	for _, h := range headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		if h == "X-Forwarded-For" {
			v, _, _ = strings.Cut(v, ",")
		}
		if ip := parse(v); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := parse(host); ip != "" {
		return ip
	}

	return Unknown
}

func parse(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
