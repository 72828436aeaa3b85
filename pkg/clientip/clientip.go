// Package clientip resolves the address of the client behind a request.
//
// Proxy headers are ignored unless the resolver is told to trust them, so a
// direct client cannot pick its own address by sending X-Forwarded-For.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Headers set by common edge proxies, in lookup order.
const (
	HeaderCloudflare   = "CF-Connecting-IP"
	HeaderDigitalOcean = "DO-Connecting-IP"
	HeaderForwardedFor = "X-Forwarded-For"
	HeaderRealIP       = "X-Real-IP"
)

// DefaultProxyHeaders is the lookup order used by WithProxyHeaders when no
// headers are given.
var DefaultProxyHeaders = []string{HeaderCloudflare, HeaderDigitalOcean, HeaderForwardedFor, HeaderRealIP}

// Resolver extracts client addresses.
type Resolver struct {
	headers []string
}

type Option func(*Resolver)

// WithProxyHeaders trusts the given headers, checked in order. With no
// arguments DefaultProxyHeaders is used.
func WithProxyHeaders(headers ...string) Option {
	return func(r *Resolver) {
		if len(headers) == 0 {
			headers = DefaultProxyHeaders
		}
		r.headers = append([]string(nil), headers...)
	}
}

func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the normalized client address, or "" when none parses.
// X-Forwarded-For yields its first valid entry.
func (res *Resolver) Resolve(r *http.Request) string {
	for _, h := range res.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		if strings.EqualFold(h, HeaderForwardedFor) {
			for part := range strings.SplitSeq(v, ",") {
				if ip := parseIP(part); ip != "" {
					return ip
				}
			}
			continue
		}
		if ip := parseIP(v); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
