// Package synth renders poster proposals into images. It selects the image
// model from the script of the poster text, maps poster sizes to provider
// aspect ratios, and falls back to the image-output content model when the
// primary model refuses to render the requested script. Rendered images are
// held as revocable temp-file assets keyed by proposal slot.
package synth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ycwang/poster-pilot/internal/apperr"
	"github.com/ycwang/poster-pilot/internal/artifact"
	"github.com/ycwang/poster-pilot/internal/gateway"
)

// referenceInstruction asks the vision model to extract visual traits of a
// reference product photo for prompt enrichment.
const referenceInstruction = "Describe the key visual features of the product in this image in detail, including colors, shapes, materials, and distinctive characteristics. Respond in Traditional Chinese."

// cjkConstraint is prepended to CJK-script prompts so the model keeps the
// poster text intact and legible.
const cjkConstraint = "重要：海報上的所有文字必須使用繁體中文，文字必須清晰可讀、完整呈現，不可出現亂碼或錯字。\n\n"

// ImageGenerator is the provider surface the engine depends on.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, model, prompt, aspectRatio string, opts gateway.ImageOptions) (*gateway.ImageResult, error)
	GenerateImageContent(ctx context.Context, model, prompt, aspectRatio string, ref *artifact.InlineImage) (*gateway.ImageResult, error)
	DescribeImage(ctx context.Context, data []byte, mimeType, instruction string) (string, error)
}

// Request describes one poster rendering job.
type Request struct {
	Proposal  int
	Prompt    string
	Size      artifact.PosterSize
	Reference *artifact.InlineImage
	Script    ScriptMode
}

// Engine renders posters through an ImageGenerator and stores results in an
// AssetStore. At most one render may be in flight per proposal index.
type Engine struct {
	gen   ImageGenerator
	store *AssetStore

	mu       sync.Mutex
	inFlight map[int]struct{}
}

func NewEngine(gen ImageGenerator, store *AssetStore) *Engine {
	return &Engine{gen: gen, store: store, inFlight: make(map[int]struct{})}
}

// Store exposes the engine's asset store.
func (e *Engine) Store() *AssetStore { return e.store }

// Render generates the poster image for one proposal. A second Render for
// the same proposal index while one is still running fails immediately.
// The resulting asset replaces any previous asset for the same slot.
func (e *Engine) Render(ctx context.Context, req Request) (*Asset, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, apperr.New(apperr.PreconditionFailed, "poster prompt is empty")
	}
	if err := e.acquire(req.Proposal); err != nil {
		return nil, err
	}
	defer e.release(req.Proposal)

	reqID := uuid.NewString()
	script := req.Script.resolve(req.Prompt)
	aspect := AspectRatio(req.Size)

	prompt := req.Prompt
	if req.Reference != nil {
		desc, err := e.gen.DescribeImage(ctx, req.Reference.Data, req.Reference.MIMEType, referenceInstruction)
		if err != nil {
			log.Warn().Err(err).Str("request_id", reqID).
				Msg("reference image description failed, rendering without it")
		} else if desc != "" {
			prompt = prompt + "\n\n參考圖片的視覺特徵：" + desc
		}
	}
	if script == ScriptCJK {
		prompt = cjkConstraint + prompt
	}

	model := gateway.ModelImagenFast
	if script == ScriptCJK {
		model = gateway.ModelImagenText
	}

	log.Info().Str("request_id", reqID).
		Int("proposal", req.Proposal).
		Str("model", model).
		Str("script", string(script)).
		Str("aspect_ratio", aspect).
		Msg("rendering poster")

	result, err := e.gen.GenerateImage(ctx, model, prompt, aspect, gateway.ImageOptions{})
	if err != nil {
		if !isScriptMismatch(err) {
			return nil, err
		}
		log.Warn().Str("request_id", reqID).Err(err).
			Msg("primary image model rejected the script, using fallback modality")
		result, err = e.gen.GenerateImageContent(ctx, gateway.ModelFlashImage, prompt, aspect, req.Reference)
		if err != nil {
			return nil, err
		}
	}

	asset, err := e.store.Put(Key{Proposal: req.Proposal, Size: req.Size}, result.Bytes, result.MIMEType)
	if err != nil {
		return nil, err
	}

	log.Info().Str("request_id", reqID).
		Int("proposal", req.Proposal).
		Str("path", asset.Path).
		Int("bytes", len(result.Bytes)).
		Msg("poster rendered")
	return asset, nil
}

func (e *Engine) acquire(proposal int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inFlight[proposal]; busy {
		return apperr.New(apperr.PreconditionFailed, "a render for this proposal is already in progress")
	}
	e.inFlight[proposal] = struct{}{}
	return nil
}

func (e *Engine) release(proposal int) {
	e.mu.Lock()
	delete(e.inFlight, proposal)
	e.mu.Unlock()
}

// isScriptMismatch reports whether the provider refused the prompt because
// of the language of its text. Safety rejections are never treated as a
// script mismatch.
func isScriptMismatch(err error) bool {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind == apperr.ContentSafetyRejected {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "language")
}
