// Package logging keeps credentials out of log output. The schedule
// store's error text can echo request context back, including the
// Authorization header, so anything crossing that boundary is sanitized
// before it becomes a log field.
package logging

import "regexp"

const (
	// MaxStatementLogLength caps logged SQL. Compiled statements with
	// long IN lists are noise past this point.
	MaxStatementLogLength = 500

	// RedactedText replaces sensitive data.
	RedactedText = "[REDACTED]"
)

var (
	// Token scheme credentials, as sent in our Authorization header.
	tokenPattern = regexp.MustCompile(`(?i)\btoken\s+[A-Za-z0-9._-]{8,}`)

	// Bearer tokens, in case the store proxies through an OAuth layer.
	bearerPattern = regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._-]{8,}`)

	// key=value style API credentials.
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?token)=[A-Za-z0-9._-]{8,}`)
)

// SanitizeError redacts credential patterns from an error's text so it
// can be logged.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return Sanitize(err.Error())
}

// Sanitize redacts credential patterns from arbitrary text.
func Sanitize(s string) string {
	s = tokenPattern.ReplaceAllString(s, "Token "+RedactedText)
	s = bearerPattern.ReplaceAllString(s, "Bearer "+RedactedText)
	s = apiKeyPattern.ReplaceAllString(s, "${1}="+RedactedText)
	return s
}

// SanitizeStatement truncates a SQL statement for logging.
func SanitizeStatement(stmt string) string {
	return TruncateString(stmt, MaxStatementLogLength)
}

// TruncateString truncates s to maxLen and appends an ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
