package apperr

import (
	"errors"
	"strings"

	"google.golang.org/genai"
)

// Classify maps an arbitrary failure onto the taxonomy and a localized user
// message. It is pure and deterministic: identical input always yields the
// identical (Kind, message) pair.
//
// Priority order: classified *Error values pass through unchanged, then
// genai.APIError is mapped by HTTP status code, then keyword heuristics over
// the lowercased error text, then messages already in the display language
// pass through, and finally a fixed unknown-error message.
//
// The keyword table is best effort: the provider does not emit structured
// error codes for every failure mode, so classification depends on its
// message wording staying stable.
func Classify(err error) (Kind, string) {
	if err == nil {
		return Unknown, Unknown.UserMessage()
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind, classified.UserMessage
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		kind := classifyStatusCode(apiErr.Code)
		return kind, kind.UserMessage()
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	for _, entry := range keywordTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.kind, entry.kind.UserMessage()
			}
		}
	}

	// A message already in the display language is likely a user-facing
	// message produced upstream; surface it as-is.
	if containsCJK(msg) {
		return Unknown, msg
	}

	return Unknown, Unknown.UserMessage()
}

// classifyStatusCode maps a provider HTTP status code onto the taxonomy.
func classifyStatusCode(code int) Kind {
	switch code {
	case 400, 401, 403:
		return CredentialMissing
	case 429:
		return QuotaExceeded
	case 503:
		return ServiceUnavailable
	case 504:
		return Timeout
	case 500, 502:
		return ServerError
	}
	return Unknown
}

// keywordTable drives text-based classification. Order matters: earlier
// entries win, mirroring the priority network > timeout > credential >
// quota > service-unavailable > server error.
var keywordTable = []struct {
	kind     Kind
	keywords []string
}{
	{NetworkFailure, []string{
		"network", "failed to fetch", "connection refused", "dial tcp",
		"no such host", "unreachable", "connection reset",
	}},
	{Timeout, []string{
		"timeout", "timed out", "deadline exceeded",
	}},
	{CredentialMissing, []string{
		"api key not valid", "invalid api key", "api_key_invalid", "api key",
		"unauthorized", "authentication", "permission denied",
	}},
	{QuotaExceeded, []string{
		"quota", "resource exhausted", "rate limit", "429",
	}},
	{ServiceUnavailable, []string{
		"service unavailable", "overloaded", "503",
	}},
	{ServerError, []string{
		"internal server error", "internal error", "500",
	}},
}

// containsCJK reports whether s holds at least one CJK Unified Ideograph,
// the signal that a message is already in the display language.
func containsCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}
