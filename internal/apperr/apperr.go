// Package apperr defines the closed error taxonomy for the pipeline and a
// pure classifier that maps arbitrary failures onto it.
//
// Every failure surfaced to the caller carries a Kind and a short localized
// user message (Traditional Chinese, the product's display language). The raw
// provider diagnostic is preserved in the wrapped error for logging, and in
// Reason only for content-safety rejections.
package apperr

import "fmt"

// Kind is the classified failure category.
type Kind int

const (
	// Unknown covers failures no other kind matches.
	Unknown Kind = iota
	// PreconditionFailed marks invalid or incomplete caller input; no
	// provider call was made.
	PreconditionFailed
	// CredentialMissing marks an absent or rejected API credential.
	CredentialMissing
	// EmptyResponse marks a provider response carrying no usable payload.
	EmptyResponse
	// MalformedJSON marks a provider payload that could not be decoded into
	// the stage's shape.
	MalformedJSON
	// SchemaViolation marks a decoded payload failing structural validation
	// (cardinality, required fields).
	SchemaViolation
	// ContentSafetyRejected marks a provider-side policy refusal. Terminal
	// for the request; Reason carries the provider's wording verbatim.
	ContentSafetyRejected
	// NetworkFailure marks a connectivity problem.
	NetworkFailure
	// Timeout marks an elapsed deadline.
	Timeout
	// QuotaExceeded marks quota exhaustion or rate limiting.
	QuotaExceeded
	// ServiceUnavailable marks a temporarily unavailable provider.
	ServiceUnavailable
	// ServerError marks a generic provider-side failure.
	ServerError
)

var kindNames = map[Kind]string{
	Unknown:               "unknown",
	PreconditionFailed:    "precondition_failed",
	CredentialMissing:     "credential_missing",
	EmptyResponse:         "empty_response",
	MalformedJSON:         "malformed_json",
	SchemaViolation:       "schema_violation",
	ContentSafetyRejected: "content_safety_rejected",
	NetworkFailure:        "network_failure",
	Timeout:               "timeout",
	QuotaExceeded:         "quota_exceeded",
	ServiceUnavailable:    "service_unavailable",
	ServerError:           "server_error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Retryable reports whether a failure of this kind could in principle succeed
// on retry. The core performs no retries itself; this is a hint for the
// caller.
func (k Kind) Retryable() bool {
	switch k {
	case NetworkFailure, Timeout, QuotaExceeded, ServiceUnavailable:
		return true
	}
	return false
}

// userMessages maps each kind to its localized user-facing message.
var userMessages = map[Kind]string{
	Unknown:               "發生未知錯誤，請稍後再試。",
	PreconditionFailed:    "輸入資料不完整或不正確，請確認後再試。",
	CredentialMissing:     "API Key 未設定，請先設定 Gemini API Key。",
	EmptyResponse:         "模型未回傳任何內容，請稍後再試。",
	MalformedJSON:         "模型回傳的資料格式錯誤，無法解析。請稍後再試。",
	SchemaViolation:       "模型回傳的資料不完整，請稍後再試。",
	ContentSafetyRejected: "圖片生成因內容安全政策被過濾。",
	NetworkFailure:        "網路連線發生問題，請檢查您的網路連線後再試。",
	Timeout:               "請求逾時，請稍後再試。",
	QuotaExceeded:         "API 使用配額已達上限，請稍後再試或檢查配額設定。",
	ServiceUnavailable:    "服務暫時無法使用，請稍後再試。",
	ServerError:           "伺服器發生錯誤，請稍後再試。",
}

// UserMessage returns the localized message for a kind.
func (k Kind) UserMessage() string {
	if msg, ok := userMessages[k]; ok {
		return msg
	}
	return userMessages[Unknown]
}

// Error is a classified pipeline failure.
type Error struct {
	// Kind is the taxonomy category.
	Kind Kind
	// Message is the developer-facing description.
	Message string
	// UserMessage is the localized message shown to the caller.
	UserMessage string
	// Reason is the verbatim provider reason. Populated only for
	// content-safety rejections.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a classified error with the kind's standard user message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, UserMessage: kind.UserMessage()}
}

// Wrap builds a classified error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, UserMessage: kind.UserMessage(), Err: err}
}

// SafetyRejected builds a content-safety rejection carrying the provider's
// reason verbatim.
func SafetyRejected(reason string) *Error {
	return &Error{
		Kind:        ContentSafetyRejected,
		Message:     fmt.Sprintf("image generation filtered by provider: %s", reason),
		UserMessage: fmt.Sprintf("圖片生成被過濾：%s", reason),
		Reason:      reason,
	}
}
