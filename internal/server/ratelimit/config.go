package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern ("*" segments, trailing "/" for prefixes)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Routes whose budgets can be tuned from the environment.
const (
	exportPath  = "/api/builder/sessions/*/export"
	enhancePath = "/api/builder/sessions/*/enhance"
)

// LoadConfig reads RATE_LIMIT_* variables on top of the defaults.
// RATE_LIMIT_EXPORTS_PER_HOUR and RATE_LIMIT_ENHANCE_PER_HOUR retune the
// browser and model routes without touching the rest of the table.
func LoadConfig() *Config {
	if !envOr("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	exports := envOr("RATE_LIMIT_EXPORTS_PER_HOUR", 0, strconv.Atoi)
	enhancements := envOr("RATE_LIMIT_ENHANCE_PER_HOUR", 0, strconv.Atoi)
	for i := range endpoints {
		switch {
		case endpoints[i].Path == exportPath && exports > 0:
			endpoints[i].Limit = exports
		case endpoints[i].Method == "POST" && isEnhanceRoute(endpoints[i].Path) && enhancements > 0:
			endpoints[i].Limit = enhancements
		}
		endpoints[i].Burst = min(endpoints[i].Burst, endpoints[i].Limit)
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envOr("RATE_LIMIT_DEFAULT_LIMIT", 1000, strconv.Atoi),
		DefaultWindow:   envOr("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: envOr("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: endpoints,
	}
}

func isEnhanceRoute(path string) bool {
	return path == enhancePath || strings.HasPrefix(path, "/api/text-enhancer/")
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
// A "*" path segment matches any single segment, e.g. a session id.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: Browser and model work (strictest limits)
		{Path: exportPath, Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: enhancePath, Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/api/text-enhancer/enhance", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/api/text-enhancer/enhance-resume-section", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},

		// Tier 2: Credential checks (slow bcrypt, brute-force target)
		{Path: "/api/auth/signup", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
		{Path: "/api/auth/signin", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/api/auth/password", Method: "PUT", Limit: 10, Window: time.Hour, Burst: 3},

		// Tier 3: Session creation
		{Path: "/api/builder/sessions", Method: "POST", Limit: 100, Window: time.Hour, Burst: 10},

		// Tier 4: Form edits and previews use the default limit; /health is unlimited
	}
}

// envOr parses the variable key, returning def when it is unset or malformed.
func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// parseIPList parses a comma-separated list of client addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
