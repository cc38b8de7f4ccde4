package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for requests that never consume tokens.
var unlimited = EndpointConfig{}

// isPrefix reports whether the rule covers a whole subtree, e.g. "/api/auth/".
func (c *EndpointConfig) isPrefix() bool {
	return strings.HasSuffix(c.Path, "/")
}

func (c *EndpointConfig) covers(path, method string) bool {
	if c.Method != method {
		return false
	}
	if c.isPrefix() {
		return strings.HasPrefix(path, c.Path)
	}
	return c.Path == path
}

// MatchEndpoint picks the rule for a request, or nil when the default limit applies.
// An exact path beats a prefix rule and longer prefixes beat shorter ones.
// Health checks and CORS preflights get a zero-limit rule, which is never limited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodOptions || (method == http.MethodGet && path == "/health") {
		u := unlimited
		return &u
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if !c.covers(path, method) {
			continue
		}
		if !c.isPrefix() {
			return c
		}
		if best == nil || len(c.Path) > len(best.Path) {
			best = c
		}
	}
	return best
}

// bucketKey names the token bucket a request draws from. All requests under a
// prefix path share one bucket per client whatever their method, so POST
// /api/auth/login and PUT /api/auth/password are throttled together.
func bucketKey(clientID, path, method string, rule *EndpointConfig) string {
	if rule != nil && rule.isPrefix() {
		return clientID + " " + rule.Path
	}
	return clientID + " " + method + " " + path
}
