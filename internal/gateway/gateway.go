package gateway

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/ycwang/poster-pilot/internal/apperr"
	"github.com/ycwang/poster-pilot/internal/artifact"
)

// CredentialFunc supplies the current API credential. The credential is
// opaque to the gateway and never persisted; the caller owns its lifecycle
// and may rotate it between calls.
type CredentialFunc func() string

// StaticCredential wraps a fixed credential string.
func StaticCredential(credential string) CredentialFunc {
	return func() string { return credential }
}

// ImageOptions tunes an image-generation request.
type ImageOptions struct {
	// OutputMIMEType of the generated image. Defaults to image/jpeg.
	OutputMIMEType string
	// CompressionQuality for lossy output formats, 0-100. Defaults to 90.
	CompressionQuality int32
	// SafetyFilterLevel passed to the provider. Empty uses the provider
	// default.
	SafetyFilterLevel genai.SafetyFilterLevel
}

// ImageResult is one generated image payload.
type ImageResult struct {
	Bytes    []byte
	MIMEType string
}

// Gateway wraps the provider connection. All methods resolve the client
// through the injected cache, so a credential change between calls takes
// effect immediately.
type Gateway struct {
	cache      *ClientCache
	credential CredentialFunc
}

// New builds a Gateway over the given cache and credential source.
func New(cache *ClientCache, credential CredentialFunc) *Gateway {
	return &Gateway{cache: cache, credential: credential}
}

func (g *Gateway) client(ctx context.Context) (*genai.Client, error) {
	return g.cache.Get(ctx, g.credential())
}

// Validate issues a minimal generation call to confirm the credential works.
func (g *Gateway) Validate(ctx context.Context) error {
	client, err := g.client(ctx)
	if err != nil {
		return err
	}

	resp, err := client.Models.GenerateContent(ctx, ModelFlash, genai.Text("hi"), nil)
	if err != nil {
		return err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return apperr.New(apperr.EmptyResponse, "credential validation returned empty response")
	}
	return nil
}

// GenerateStructured requests schema-constrained JSON text from the given
// model. An empty text payload fails with EmptyResponse; no parse is
// attempted here.
func (g *Gateway) GenerateStructured(ctx context.Context, model, prompt string, schema *genai.Schema) (string, error) {
	client, err := g.client(ctx)
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("model", model).
		Int("prompt_length", len(prompt)).
		Msg("Requesting structured generation")

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		log.Error().Err(err).Str("model", model).Msg("Structured generation failed")
		return "", err
	}

	text := resp.Text()
	if text == "" {
		log.Warn().Str("model", model).Msg("Provider returned no text for structured generation")
		return "", apperr.New(apperr.EmptyResponse, "provider returned no text")
	}

	log.Debug().
		Str("model", model).
		Int("response_length", len(text)).
		Dur("duration", time.Since(start)).
		Msg("Structured generation complete")

	return text, nil
}

// DescribeImage issues a vision sub-call: the image plus an instruction, a
// free-text description back.
func (g *Gateway) DescribeImage(ctx context.Context, data []byte, mimeType, instruction string) (string, error) {
	client, err := g.client(ctx)
	if err != nil {
		return "", err
	}

	log.Debug().
		Int("image_bytes", len(data)).
		Str("image_mime", mimeType).
		Msg("Requesting vision description")

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}},
			{Text: instruction},
		},
	}}

	resp, err := client.Models.GenerateContent(ctx, ModelFlash, contents, nil)
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", apperr.New(apperr.EmptyResponse, "vision call returned no text")
	}
	return text, nil
}

// GenerateImage requests exactly one image from an Imagen model. A
// safety-filtered result fails with ContentSafetyRejected carrying the
// provider reason verbatim.
func (g *Gateway) GenerateImage(ctx context.Context, model, prompt, aspectRatio string, opts ImageOptions) (*ImageResult, error) {
	client, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	outputMIME := opts.OutputMIMEType
	if outputMIME == "" {
		outputMIME = "image/jpeg"
	}
	quality := opts.CompressionQuality
	if quality == 0 {
		quality = 90
	}

	log.Info().
		Str("model", model).
		Str("aspect_ratio", aspectRatio).
		Int("prompt_length", len(prompt)).
		Msg("Requesting image generation")

	start := time.Now()
	resp, err := client.Models.GenerateImages(ctx, model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages:           1,
		AspectRatio:              aspectRatio,
		OutputMIMEType:           outputMIME,
		OutputCompressionQuality: genai.Ptr(quality),
		IncludeRAIReason:         true,
		PersonGeneration:         genai.PersonGenerationAllowAdult,
		SafetyFilterLevel:        opts.SafetyFilterLevel,
	})
	if err != nil {
		log.Error().Err(err).Str("model", model).Msg("Image generation failed")
		return nil, err
	}

	if len(resp.GeneratedImages) == 0 {
		return nil, apperr.New(apperr.EmptyResponse, "provider returned no generated images")
	}

	generated := resp.GeneratedImages[0]
	if generated.RAIFilteredReason != "" {
		log.Warn().
			Str("model", model).
			Str("reason", generated.RAIFilteredReason).
			Msg("Image generation filtered by content safety")
		return nil, apperr.SafetyRejected(generated.RAIFilteredReason)
	}
	if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		return nil, apperr.New(apperr.EmptyResponse, "generated image payload is empty")
	}

	mime := generated.Image.MIMEType
	if mime == "" {
		mime = outputMIME
	}

	log.Info().
		Str("model", model).
		Int("image_bytes", len(generated.Image.ImageBytes)).
		Dur("duration", time.Since(start)).
		Msg("Image generation complete")

	return &ImageResult{Bytes: generated.Image.ImageBytes, MIMEType: mime}, nil
}

// GenerateImageContent requests one image through the content-generation
// modality (IMAGE response modality), the fallback path when the Imagen
// models cannot serve a prompt. An optional reference image is sent ahead of
// the prompt text.
func (g *Gateway) GenerateImageContent(ctx context.Context, model, prompt, aspectRatio string, ref *artifact.InlineImage) (*ImageResult, error) {
	client, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	var parts []*genai.Part
	if ref != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{Data: ref.Data, MIMEType: ref.MIMEType},
		})
	}
	parts = append(parts, &genai.Part{Text: prompt})

	log.Info().
		Str("model", model).
		Str("aspect_ratio", aspectRatio).
		Bool("has_reference", ref != nil).
		Msg("Requesting image via content modality")

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: parts}},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig:        &genai.ImageConfig{AspectRatio: aspectRatio},
		})
	if err != nil {
		log.Error().Err(err).Str("model", model).Msg("Content-modality image generation failed")
		return nil, err
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				log.Info().
					Str("model", model).
					Int("image_bytes", len(part.InlineData.Data)).
					Dur("duration", time.Since(start)).
					Msg("Content-modality image generation complete")
				return &ImageResult{
					Bytes:    part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				}, nil
			}
		}
	}

	return nil, apperr.New(apperr.EmptyResponse, "no image data found in response")
}
