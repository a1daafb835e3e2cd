// Package pipeline drives the staged generation flow: market analysis,
// content strategy, then poster proposals. Each stage consumes the
// artifacts of the previous one and every stage result is validated
// against its schema contract before it is stored.
package pipeline

import (
	"context"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/ycwang/poster-pilot/internal/apperr"
	"github.com/ycwang/poster-pilot/internal/artifact"
	"github.com/ycwang/poster-pilot/internal/gateway"
	"github.com/ycwang/poster-pilot/internal/jsonutil"
	"github.com/ycwang/poster-pilot/internal/schema"
)

// Generator is the model surface the pipeline depends on.
type Generator interface {
	GenerateStructured(ctx context.Context, model, prompt string, schema *genai.Schema) (string, error)
	DescribeImage(ctx context.Context, data []byte, mimeType, instruction string) (string, error)
}

// Orchestrator holds the accumulated artifacts of a single generation
// session. Stages must run in order; a failed stage leaves previously
// accumulated artifacts untouched.
type Orchestrator struct {
	gen Generator

	product   *artifact.ProductInfo
	analysis  *artifact.AnalysisResult
	strategy  *artifact.ContentStrategy
	proposals []artifact.PosterProposal
}

func New(gen Generator) *Orchestrator {
	return &Orchestrator{gen: gen}
}

// Reset discards all accumulated artifacts so a new session can start.
func (o *Orchestrator) Reset() {
	o.product = nil
	o.analysis = nil
	o.strategy = nil
	o.proposals = nil
}

// Product returns the validated product input of the current session.
func (o *Orchestrator) Product() *artifact.ProductInfo { return o.product }

// Analysis returns the market analysis, or nil before Analyze succeeds.
func (o *Orchestrator) Analysis() *artifact.AnalysisResult { return o.analysis }

// Strategy returns the content strategy, or nil before Strategize succeeds.
func (o *Orchestrator) Strategy() *artifact.ContentStrategy { return o.strategy }

// Proposals returns the poster proposals, or nil before ProposePosters
// succeeds.
func (o *Orchestrator) Proposals() []artifact.PosterProposal { return o.proposals }

// Analyze validates the product input and produces the market analysis.
// When a product image is attached its visual description is folded into
// the prompt; a failed description degrades to a placeholder rather than
// failing the stage.
func (o *Orchestrator) Analyze(ctx context.Context, info artifact.ProductInfo) (*artifact.AnalysisResult, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	imageDescription := noImageDescription
	if info.Image != nil {
		desc, err := o.gen.DescribeImage(ctx, info.Image.Data, info.Image.MIMEType, productImageInstruction)
		if err != nil {
			log.Warn().Err(err).Msg("product image description failed, continuing without visual context")
			imageDescription = imageAnalysisFailed
		} else {
			imageDescription = desc
		}
	}

	prompt := buildAnalysisPrompt(info, imageDescription)
	raw, err := o.gen.GenerateStructured(ctx, gateway.StageModel(), prompt, schema.Contract(schema.StageAnalysis))
	if err != nil {
		return nil, err
	}

	analysis, err := decodeAnalysis(raw)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(schema.StageAnalysis, analysis); err != nil {
		return nil, err
	}

	o.product = &info
	o.analysis = analysis
	log.Info().Int("competitors", len(analysis.CompetitorAnalysis)).
		Int("personas", len(analysis.BuyerPersonas)).
		Msg("market analysis complete")
	return analysis, nil
}

// Strategize produces the content strategy from the stored analysis.
func (o *Orchestrator) Strategize(ctx context.Context) (*artifact.ContentStrategy, error) {
	if o.analysis == nil {
		return nil, apperr.New(apperr.PreconditionFailed, "content strategy requires a completed market analysis")
	}

	prompt := buildStrategyPrompt(o.analysis)
	raw, err := o.gen.GenerateStructured(ctx, gateway.StageModel(), prompt, schema.Contract(schema.StageStrategy))
	if err != nil {
		return nil, err
	}

	strategy, err := decodeStrategy(raw)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(schema.StageStrategy, strategy); err != nil {
		return nil, err
	}

	o.strategy = strategy
	log.Info().Int("topics", len(strategy.ContentTopics)).Msg("content strategy complete")
	return strategy, nil
}

// ProposePosters produces the three poster proposals from the stored
// analysis and strategy.
func (o *Orchestrator) ProposePosters(ctx context.Context) ([]artifact.PosterProposal, error) {
	if o.analysis == nil || o.strategy == nil {
		return nil, apperr.New(apperr.PreconditionFailed, "poster proposals require a completed analysis and strategy")
	}

	prompt := buildPosterPrompt(*o.product, o.analysis, o.strategy)
	raw, err := o.gen.GenerateStructured(ctx, gateway.StageModel(), prompt, schema.Contract(schema.StagePosterProposals))
	if err != nil {
		return nil, err
	}

	proposals, err := decodeProposals(raw)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(schema.StagePosterProposals, proposals); err != nil {
		return nil, err
	}

	o.proposals = proposals.Proposals
	log.Info().Int("proposals", len(proposals.Proposals)).Msg("poster proposals complete")
	return proposals.Proposals, nil
}

// decodeAnalysis parses the raw model payload and rejects documents that
// decode but omit required nested objects, before contract validation.
func decodeAnalysis(raw string) (*artifact.AnalysisResult, error) {
	analysis, err := jsonutil.Parse[artifact.AnalysisResult](raw)
	if err != nil {
		return nil, apperr.Wrap(apperr.MalformedJSON, "decode market analysis", err)
	}
	if analysis.ProductCoreValue == nil {
		return nil, apperr.New(apperr.MalformedJSON, "market analysis missing productCoreValue")
	}
	if analysis.MarketPositioning == nil {
		return nil, apperr.New(apperr.MalformedJSON, "market analysis missing marketPositioning")
	}
	return &analysis, nil
}

func decodeStrategy(raw string) (*artifact.ContentStrategy, error) {
	strategy, err := jsonutil.Parse[artifact.ContentStrategy](raw)
	if err != nil {
		return nil, apperr.Wrap(apperr.MalformedJSON, "decode content strategy", err)
	}
	for _, topic := range strategy.ContentTopics {
		if topic.SEOGuidance == nil {
			return nil, apperr.New(apperr.MalformedJSON, "content topic "+topic.Topic+" missing seo guidance")
		}
		if topic.SEOGuidance.LinkingStrategy == nil {
			return nil, apperr.New(apperr.MalformedJSON, "content topic "+topic.Topic+" missing linking strategy")
		}
	}
	return &strategy, nil
}

func decodeProposals(raw string) (*artifact.PosterProposals, error) {
	wrapper, err := jsonutil.Parse[artifact.PosterProposals](raw)
	if err != nil {
		return nil, apperr.Wrap(apperr.MalformedJSON, "decode poster proposals", err)
	}
	return &wrapper, nil
}
