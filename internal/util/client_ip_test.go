package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func requestFrom(remoteAddr string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	for name, value := range headers {
		req.Header.Set(name, value)
	}
	return req
}

func TestClientIPIgnoresHeadersFromUntrustedPeer(t *testing.T) {
	req := requestFrom("203.0.113.7:51000", map[string]string{
		"X-Forwarded-For": "198.51.100.9",
	})
	if got := ClientIP(req, nil); got != "203.0.113.7" {
		t.Fatalf("ClientIP = %q, want 203.0.113.7", got)
	}

	trusted, err := NewTrustedProxies([]string{"10.0.0.0/8"})
	if err != nil {
		t.Fatalf("NewTrustedProxies: %v", err)
	}
	if got := ClientIP(req, trusted); got != "203.0.113.7" {
		t.Fatalf("ClientIP = %q, want peer address for untrusted peer", got)
	}
}

func TestClientIPWalksForwardedChain(t *testing.T) {
	trusted, err := NewTrustedProxies([]string{"10.0.0.0/8", "192.0.2.1"})
	if err != nil {
		t.Fatalf("NewTrustedProxies: %v", err)
	}

	req := requestFrom("10.1.2.3:44321", map[string]string{
		"X-Forwarded-For": "198.51.100.9, 192.0.2.1, 10.9.9.9",
	})
	if got := ClientIP(req, trusted); got != "198.51.100.9" {
		t.Fatalf("ClientIP = %q, want first untrusted hop 198.51.100.9", got)
	}

	// A chain made entirely of trusted proxies falls back to its left end.
	req = requestFrom("10.1.2.3:44321", map[string]string{
		"X-Forwarded-For": "10.5.5.5, 192.0.2.1",
	})
	if got := ClientIP(req, trusted); got != "10.5.5.5" {
		t.Fatalf("ClientIP = %q, want 10.5.5.5", got)
	}
}

func TestClientIPMalformedChainFallsBack(t *testing.T) {
	trusted, err := NewTrustedProxies([]string{"10.0.0.0/8"})
	if err != nil {
		t.Fatalf("NewTrustedProxies: %v", err)
	}

	req := requestFrom("10.1.2.3:44321", map[string]string{
		"X-Forwarded-For": "not-an-ip, 198.51.100.9",
		"X-Real-IP":       "198.51.100.20",
	})
	if got := ClientIP(req, trusted); got != "198.51.100.20" {
		t.Fatalf("ClientIP = %q, want X-Real-IP fallback", got)
	}

	req = requestFrom("10.1.2.3:44321", map[string]string{
		"X-Forwarded-For": "garbage",
	})
	if got := ClientIP(req, trusted); got != "10.1.2.3" {
		t.Fatalf("ClientIP = %q, want peer address", got)
	}
}

func TestNewTrustedProxiesRejectsInvalidEntry(t *testing.T) {
	if _, err := NewTrustedProxies([]string{"10.0.0.0/8", "bogus"}); err == nil {
		t.Fatalf("expected error for invalid entry")
	}
}

func TestTrustedProxiesContainsIPv6(t *testing.T) {
	trusted, err := NewTrustedProxies([]string{"2001:db8::1"})
	if err != nil {
		t.Fatalf("NewTrustedProxies: %v", err)
	}
	req := requestFrom("[2001:db8::1]:9000", map[string]string{
		"X-Forwarded-For": "198.51.100.9",
	})
	if got := ClientIP(req, trusted); got != "198.51.100.9" {
		t.Fatalf("ClientIP = %q, want forwarded client", got)
	}
}
