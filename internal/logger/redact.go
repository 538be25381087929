package logger

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Decoded payloads routinely carry credentials (Wi-Fi joins, OTP seeds,
// tokens in URLs), so anything payload-shaped stays out of the logs.
var sensitiveKeys = map[string]bool{
	"payload":       true,
	"text":          true,
	"result":        true,
	"content":       true,
	"decoded":       true,
	"displayed":     true,
	"password":      true,
	"secret":        true,
	"token":         true,
	"authorization": true,
}

var sensitiveKeySubstrings = []string{
	"payload",
	"text",
	"content",
	"decoded",
	"password",
	"secret",
	"token",
}

var sensitiveValuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bWIFI:.*\bP:[^;]+`),
	regexp.MustCompile(`(?i)\botpauth(-migration)?://\S+`),
	regexp.MustCompile(`(?i)[?&](secret|token|access_token|password|key)=[^&\s]+`),
	regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9\-._~+/]+=*`),
	regexp.MustCompile(`(?i)\b(api[_-]?key|access[_-]?token|secret)\b\s*[:=]\s*\S+`),
}

// RedactAttr is a slog.ReplaceAttr function that hides decoded payloads and
// credential-looking values.
func RedactAttr(_ []string, a slog.Attr) slog.Attr {
	if shouldRedact(a) {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}

func shouldRedact(a slog.Attr) bool {
	key := strings.ToLower(a.Key)
	if sensitiveKeys[key] {
		return true
	}
	for _, sub := range sensitiveKeySubstrings {
		if strings.Contains(key, sub) {
			return true
		}
	}

	var value string
	switch a.Value.Kind() {
	case slog.KindString:
		value = a.Value.String()
	case slog.KindGroup:
		return false
	default:
		value = fmt.Sprint(a.Value.Any())
	}
	if value == "" {
		return false
	}
	for _, re := range sensitiveValuePatterns {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}
