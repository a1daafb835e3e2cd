// Package artifact defines the data shapes flowing through the marketing
// pipeline: the product input, the three stage artifacts (market analysis,
// content strategy, poster proposals) and the poster size tokens.
//
// Every stage artifact is immutable once produced. Nested objects required by
// the generation schema are modeled as pointers so the parse step can tell a
// missing object apart from an empty one.
package artifact

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ycwang/poster-pilot/internal/apperr"
)

// InlineImage is a binary image payload with its declared MIME type.
type InlineImage struct {
	Data     []byte
	MIMEType string
}

// Input bounds for ProductInfo fields.
const (
	MaxNameLength        = 100
	MinDescriptionLength = 10
	MaxDescriptionLength = 5000
	MaxMarketLength      = 200
)

// allowedImageMIMETypes is the fixed set of product image formats accepted
// by the analyze stage.
var allowedImageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ProductInfo is the raw product input submitted to the analyze stage.
// Immutable once submitted.
type ProductInfo struct {
	Name        string
	Description string
	Market      string
	URL         string
	Image       *InlineImage
}

// Validate checks the field bounds before any provider call is made.
// A violation fails fast with a precondition error.
func (p *ProductInfo) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return apperr.New(apperr.PreconditionFailed, "product name is empty")
	case len([]rune(p.Name)) > MaxNameLength:
		return apperr.New(apperr.PreconditionFailed,
			fmt.Sprintf("product name exceeds %d characters", MaxNameLength))
	case len([]rune(p.Description)) < MinDescriptionLength:
		return apperr.New(apperr.PreconditionFailed,
			fmt.Sprintf("product description shorter than %d characters", MinDescriptionLength))
	case len([]rune(p.Description)) > MaxDescriptionLength:
		return apperr.New(apperr.PreconditionFailed,
			fmt.Sprintf("product description exceeds %d characters", MaxDescriptionLength))
	case strings.TrimSpace(p.Market) == "":
		return apperr.New(apperr.PreconditionFailed, "target market is empty")
	case len([]rune(p.Market)) > MaxMarketLength:
		return apperr.New(apperr.PreconditionFailed,
			fmt.Sprintf("target market exceeds %d characters", MaxMarketLength))
	}

	if p.URL != "" {
		u, err := url.Parse(p.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return apperr.New(apperr.PreconditionFailed, "product URL is not a valid absolute URL")
		}
	}

	if p.Image != nil {
		if len(p.Image.Data) == 0 {
			return apperr.New(apperr.PreconditionFailed, "product image payload is empty")
		}
		if !allowedImageMIMETypes[p.Image.MIMEType] {
			return apperr.New(apperr.PreconditionFailed,
				fmt.Sprintf("unsupported product image type %q", p.Image.MIMEType))
		}
	}

	return nil
}

// ProductCoreValue distills what the product offers.
type ProductCoreValue struct {
	MainFeatures     []string `json:"mainFeatures"`
	CoreAdvantages   []string `json:"coreAdvantages"`
	PainPointsSolved []string `json:"painPointsSolved"`
}

// MarketPositioning captures the local-market context for the product.
type MarketPositioning struct {
	CulturalInsights string   `json:"culturalInsights"`
	ConsumerHabits   string   `json:"consumerHabits"`
	LanguageNuances  string   `json:"languageNuances"`
	SearchTrends     []string `json:"searchTrends"`
}

// Competitor describes one competing brand in the target market.
type Competitor struct {
	BrandName         string   `json:"brandName"`
	MarketingStrategy string   `json:"marketingStrategy"`
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
}

// BuyerPersona describes a representative buyer in the target market.
type BuyerPersona struct {
	PersonaName  string   `json:"personaName"`
	Demographics string   `json:"demographics"`
	Interests    []string `json:"interests"`
	PainPoints   []string `json:"painPoints"`
	Keywords     []string `json:"keywords"`
}

// AnalysisResult is the output of the analyze stage. Consumed read-only by
// all later stages.
type AnalysisResult struct {
	ProductCoreValue   *ProductCoreValue  `json:"productCoreValue"`
	MarketPositioning  *MarketPositioning `json:"marketPositioning"`
	CompetitorAnalysis []Competitor       `json:"competitorAnalysis"`
	BuyerPersonas      []BuyerPersona     `json:"buyerPersonas"`
}

// LinkingStrategy holds internal and external linking advice for a topic.
type LinkingStrategy struct {
	Internal string `json:"internal"`
	External string `json:"external"`
}

// SEOGuidance holds per-topic SEO recommendations.
type SEOGuidance struct {
	KeywordDensity   string           `json:"keywordDensity"`
	SemanticKeywords []string         `json:"semanticKeywords"`
	LinkingStrategy  *LinkingStrategy `json:"linkingStrategy"`
}

// ContentTopic is one non-promotional content idea with its SEO guidance.
type ContentTopic struct {
	Topic            string       `json:"topic"`
	Description      string       `json:"description"`
	FocusKeyword     string       `json:"focusKeyword"`
	LongTailKeywords []string     `json:"longTailKeywords"`
	SEOGuidance      *SEOGuidance `json:"seoGuidance"`
}

// InteractiveElement is one interactive webpage element idea.
type InteractiveElement struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ContentStrategy is the output of the strategize stage. Depends on exactly
// one AnalysisResult.
type ContentStrategy struct {
	ContentTopics       []ContentTopic       `json:"contentTopics"`
	InteractiveElements []InteractiveElement `json:"interactiveElements"`
	CTASuggestions      []string             `json:"ctaSuggestions"`
}

// PosterProposal is one poster design proposal. Prompt is the text handed to
// image synthesis.
type PosterProposal struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	DesignConcept     string   `json:"designConcept"`
	ColorScheme       string   `json:"colorScheme"`
	KeyVisualElements []string `json:"keyVisualElements"`
	TextContent       string   `json:"textContent"`
	Prompt            string   `json:"prompt"`
}

// ProposalCount is the exact number of proposals the propose-posters stage
// must produce.
const ProposalCount = 3

// PosterProposals is the output of the propose-posters stage.
type PosterProposals struct {
	Proposals []PosterProposal `json:"proposals"`
}

// PosterSize is a logical poster dimension token selected by the caller.
type PosterSize string

// Supported poster sizes.
const (
	SizeSquare       PosterSize = "1080x1080" // square
	SizePortrait     PosterSize = "1080x1350" // portrait
	SizeTallPortrait PosterSize = "1080x1920" // tall portrait (phone)
	SizeLandscape    PosterSize = "1920x1080" // landscape
)
