package apperr

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"
)

func TestClassifyKeywords(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"network phrase", errors.New("network error while calling api"), NetworkFailure},
		{"failed to fetch", errors.New("Failed to fetch"), NetworkFailure},
		{"connection refused", errors.New("dial tcp 10.0.0.1:443: connection refused"), NetworkFailure},
		{"no such host", errors.New("lookup example.invalid: no such host"), NetworkFailure},
		{"connection reset", errors.New("read: connection reset by peer"), NetworkFailure},
		{"timeout word", errors.New("request timeout"), Timeout},
		{"timed out", errors.New("operation timed out"), Timeout},
		{"deadline exceeded", errors.New("context deadline exceeded"), Timeout},
		{"api key not valid", errors.New("API key not valid. Please pass a valid API key."), CredentialMissing},
		{"api_key_invalid", errors.New("error: API_KEY_INVALID"), CredentialMissing},
		{"unauthorized", errors.New("401 Unauthorized"), CredentialMissing},
		{"permission denied", errors.New("permission denied on resource"), CredentialMissing},
		{"quota", errors.New("Quota exceeded for quota metric"), QuotaExceeded},
		{"resource exhausted", errors.New("rpc error: resource exhausted"), QuotaExceeded},
		{"rate limit", errors.New("rate limit reached"), QuotaExceeded},
		{"service unavailable", errors.New("Service Unavailable"), ServiceUnavailable},
		{"overloaded", errors.New("the model is overloaded"), ServiceUnavailable},
		{"internal server error", errors.New("Internal Server Error"), ServerError},
		{"internal error", errors.New("internal error occurred"), ServerError},
		{"unmatched", errors.New("something odd happened"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, msg := Classify(tt.err)
			if kind != tt.want {
				t.Errorf("Classify(%q) kind = %s, want %s", tt.err, kind, tt.want)
			}
			if msg != tt.want.UserMessage() {
				t.Errorf("Classify(%q) message = %q, want %q", tt.err, msg, tt.want.UserMessage())
			}
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// A message matching both a network and a timeout keyword must classify
	// as a network failure.
	kind, _ := Classify(errors.New("network timeout"))
	if kind != NetworkFailure {
		t.Errorf("kind = %s, want %s", kind, NetworkFailure)
	}

	// Timeout outranks credential keywords.
	kind, _ = Classify(errors.New("timed out waiting for api key validation"))
	if kind != Timeout {
		t.Errorf("kind = %s, want %s", kind, Timeout)
	}
}

func TestClassifyStatusCodes(t *testing.T) {
	tests := []struct {
		code int
		want Kind
	}{
		{400, CredentialMissing},
		{401, CredentialMissing},
		{403, CredentialMissing},
		{429, QuotaExceeded},
		{500, ServerError},
		{502, ServerError},
		{503, ServiceUnavailable},
		{504, Timeout},
		{418, Unknown},
	}

	for _, tt := range tests {
		err := fmt.Errorf("call failed: %w", &genai.APIError{Code: tt.code, Message: "x"})
		kind, _ := Classify(err)
		if kind != tt.want {
			t.Errorf("Classify(code %d) = %s, want %s", tt.code, kind, tt.want)
		}
	}
}

func TestClassifyPassthrough(t *testing.T) {
	orig := SafetyRejected("violent content")
	kind, msg := Classify(fmt.Errorf("render: %w", orig))
	if kind != ContentSafetyRejected {
		t.Fatalf("kind = %s, want %s", kind, ContentSafetyRejected)
	}
	if msg != orig.UserMessage {
		t.Errorf("message = %q, want %q", msg, orig.UserMessage)
	}
}

func TestClassifyCJKMessagePassthrough(t *testing.T) {
	kind, msg := Classify(errors.New("圖片尺寸不符合要求"))
	if kind != Unknown {
		t.Errorf("kind = %s, want %s", kind, Unknown)
	}
	if msg != "圖片尺寸不符合要求" {
		t.Errorf("message = %q, want passthrough", msg)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	err := errors.New("some quota related failure")
	k1, m1 := Classify(err)
	k2, m2 := Classify(err)
	if k1 != k2 || m1 != m2 {
		t.Errorf("classification not stable: (%s, %q) vs (%s, %q)", k1, m1, k2, m2)
	}
}

func TestRetryable(t *testing.T) {
	retryable := []Kind{NetworkFailure, Timeout, QuotaExceeded, ServiceUnavailable}
	for _, k := range retryable {
		if !k.Retryable() {
			t.Errorf("%s should be retryable", k)
		}
	}
	terminal := []Kind{Unknown, PreconditionFailed, CredentialMissing, EmptyResponse,
		MalformedJSON, SchemaViolation, ContentSafetyRejected, ServerError}
	for _, k := range terminal {
		if k.Retryable() {
			t.Errorf("%s should not be retryable", k)
		}
	}
}

func TestSafetyRejectedCarriesReasonVerbatim(t *testing.T) {
	e := SafetyRejected("Person generation blocked")
	if e.Reason != "Person generation blocked" {
		t.Errorf("Reason = %q", e.Reason)
	}
	if e.Kind != ContentSafetyRejected {
		t.Errorf("Kind = %s", e.Kind)
	}
}
