package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/ycwang/poster-pilot/internal/apperr"
)

func TestClientCacheEmptyCredential(t *testing.T) {
	cache := NewClientCache()
	_, err := cache.Get(context.Background(), "")
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.CredentialMissing {
		t.Fatalf("error = %v, want CredentialMissing", err)
	}
}

func TestClientCacheReusesClient(t *testing.T) {
	cache := NewClientCache()
	ctx := context.Background()

	first, err := cache.Get(ctx, "key-one")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, err := cache.Get(ctx, "key-one")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if first != second {
		t.Error("same credential produced a different client")
	}
}

func TestClientCacheReplacesOnCredentialChange(t *testing.T) {
	cache := NewClientCache()
	ctx := context.Background()

	first, err := cache.Get(ctx, "key-one")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, err := cache.Get(ctx, "key-two")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if first == second {
		t.Error("changed credential did not replace the client")
	}

	// Going back to the first credential builds a fresh client too; only
	// the most recent one is cached.
	third, err := cache.Get(ctx, "key-one")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if third == second {
		t.Error("stale client returned after credential change")
	}
}

func TestStaticCredential(t *testing.T) {
	fn := StaticCredential("abc")
	if fn() != "abc" || fn() != "abc" {
		t.Error("StaticCredential not stable")
	}
}
