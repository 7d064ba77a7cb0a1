package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// ProxySet is a list of trusted proxy networks.
type ProxySet []*net.IPNet

// ParseProxies parses CIDRs and bare IPs. Invalid entries are logged and
// skipped.
func ParseProxies(entries []string) ProxySet {
	var set ProxySet
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if _, network, err := net.ParseCIDR(entry); err == nil {
			set = append(set, network)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			slog.Warn("realip: invalid trusted proxy, skipping", "entry", entry)
			continue
		}
		bits := 128
		if ip.To4() != nil {
			ip, bits = ip.To4(), 32
		}
		set = append(set, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return set
}

// Contains reports whether ip is in one of the networks.
func (p ProxySet) Contains(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, network := range p {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP resolves the client address of r. Forwarding headers are only
// honoured when the connection comes from a trusted proxy. X-Forwarded-For
// is walked from the right and the first hop that is not itself a trusted
// proxy wins; X-Real-IP is used when there is no usable X-Forwarded-For.
func (p ProxySet) ClientIP(r *http.Request) string {
	remote := hostIP(r.RemoteAddr)
	if !p.Contains(remote) {
		return r.RemoteAddr
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			ip := net.ParseIP(strings.TrimSpace(hops[i]))
			if ip == nil {
				break
			}
			if !p.Contains(ip) {
				return ip.String()
			}
		}
	}

	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String()
	}
	return r.RemoteAddr
}

// TrustedRealIP rewrites r.RemoteAddr to the resolved client address.
// With no trusted proxies configured, RemoteAddr is left alone.
func TrustedRealIP(trusted []string) func(http.Handler) http.Handler {
	proxies := ParseProxies(trusted)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(proxies) > 0 {
				r.RemoteAddr = proxies.ClientIP(r)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// hostIP parses the IP out of a host:port string or a plain IP.
func hostIP(addr string) net.IP {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(addr)
}
