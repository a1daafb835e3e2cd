// Package gateway is the single point of contact with the Gemini API. It
// caches the underlying client keyed by credential and exposes structured
// generation, image generation and vision-description calls to the pipeline.
package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/ycwang/poster-pilot/internal/apperr"
)

// ClientCache lazily constructs a Gemini client and reuses it while the
// credential is unchanged. A changed credential replaces the cached client;
// the old one is never mutated in place. No client is constructed until a
// credential is supplied.
type ClientCache struct {
	mu          sync.Mutex
	fingerprint string
	client      *genai.Client
}

// NewClientCache returns an empty cache.
func NewClientCache() *ClientCache {
	return &ClientCache{}
}

// Get returns the cached client for the credential, constructing a new one if
// the credential differs from the last call.
func (c *ClientCache) Get(ctx context.Context, credential string) (*genai.Client, error) {
	if credential == "" {
		return nil, apperr.New(apperr.CredentialMissing, "no API credential supplied")
	}

	sum := sha256.Sum256([]byte(credential))
	fingerprint := hex.EncodeToString(sum[:])

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil && c.fingerprint == fingerprint {
		return c.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  credential,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.CredentialMissing, "failed to create Gemini client", err)
	}

	if c.client != nil {
		log.Debug().Msg("Credential changed, replacing cached Gemini client")
	}
	c.client = client
	c.fingerprint = fingerprint

	return client, nil
}
