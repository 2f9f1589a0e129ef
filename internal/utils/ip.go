package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

// ipHeaders are checked in priority order. CF-Connecting-IP is injected by
// Cloudflare, the others by common reverse proxies.
var ipHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// ResolveClientIP extracts the client IP from the request headers, respecting
// reverse proxies. Candidates that are not syntactically valid public IP
// addresses are skipped. When every candidate fails, the raw peer address is
// returned as-is, or "unknown" when even that is empty. It never fails.
func ResolveClientIP(headers http.Header, remoteAddr string) string {
	candidates := make([]string, 0, len(ipHeaders)+1)
	for _, h := range ipHeaders {
		candidates = append(candidates, headers.Get(h))
	}

	// RemoteAddr is usually host:port
	peer := remoteAddr
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		peer = host
	}
	candidates = append(candidates, peer)

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		// X-Forwarded-For can be a comma-separated list; the first
		// (leftmost) element is the client
		ip := strings.TrimSpace(strings.Split(candidate, ",")[0])
		if isPublicIP(ip) {
			return ip
		}
	}

	if peer != "" {
		return peer
	}
	return "unknown"
}

// GetRealIP resolves the client IP for a gin request
func GetRealIP(c *gin.Context) string {
	return ResolveClientIP(c.Request.Header, c.Request.RemoteAddr)
}

// isPublicIP reports whether s parses as an IP address outside the private
// and reserved ranges
func isPublicIP(s string) bool {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return false
	}
	switch {
	case addr.IsPrivate(),
		addr.IsLoopback(),
		addr.IsLinkLocalUnicast(),
		addr.IsLinkLocalMulticast(),
		addr.IsMulticast(),
		addr.IsUnspecified():
		return false
	}
	return true
}
