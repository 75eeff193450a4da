// Package logging builds the process logger and scrubs secrets from values
// that end up in log output.
package logging

import (
	"regexp"

	"go.uber.org/zap"
)

// RedactedText replaces sensitive data in sanitized strings.
const RedactedText = "[REDACTED]"

var (
	// key=value style API keys, e.g. "api_key=sk-abc..." in provider errors.
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_-]?key|apikey|token)=[A-Za-z0-9-_]{16,}`)

	// Bearer tokens echoed back by HTTP client errors.
	bearerPattern = regexp.MustCompile(`Bearer\s+[A-Za-z0-9-_.]+`)

	// Credentials embedded in URLs (user:pass@host).
	urlCredsPattern = regexp.MustCompile(`://[^:/\s]+:[^@\s]+@[^/\s]+`)
)

// New constructs the process logger. Production gets JSON output with
// sampling; everything else gets the human-readable development encoder.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// SanitizeError strips credentials from an error before it is logged.
// Refinement providers sometimes echo request details, including auth
// material, in their error bodies.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	sanitized := apiKeyPattern.ReplaceAllString(err.Error(), "${1}="+RedactedText)
	sanitized = bearerPattern.ReplaceAllString(sanitized, "Bearer "+RedactedText)
	sanitized = urlCredsPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@"+RedactedText)
	return sanitized
}
