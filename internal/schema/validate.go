package schema

import (
	"fmt"
	"strings"

	"github.com/ycwang/poster-pilot/internal/apperr"
	"github.com/ycwang/poster-pilot/internal/artifact"
)

// Validate checks a parsed stage artifact against the structural expectations
// the provider schema cannot enforce. A failure is reported as a schema
// violation naming the specific field or cardinality problem.
func Validate(s Stage, value any) error {
	switch s {
	case StageAnalysis:
		a, ok := value.(*artifact.AnalysisResult)
		if !ok {
			return violationf("analysis value has unexpected type %T", value)
		}
		return validateAnalysis(a)
	case StageStrategy:
		c, ok := value.(*artifact.ContentStrategy)
		if !ok {
			return violationf("strategy value has unexpected type %T", value)
		}
		return validateStrategy(c)
	case StagePosterProposals:
		p, ok := value.(*artifact.PosterProposals)
		if !ok {
			return violationf("poster proposals value has unexpected type %T", value)
		}
		return validateProposals(p)
	}
	return violationf("unknown stage %d", s)
}

func violationf(format string, args ...any) error {
	return apperr.New(apperr.SchemaViolation, fmt.Sprintf(format, args...))
}

func validateAnalysis(a *artifact.AnalysisResult) error {
	core := a.ProductCoreValue
	switch {
	case core == nil:
		return violationf("analysis missing productCoreValue")
	case len(core.MainFeatures) == 0:
		return violationf("productCoreValue.mainFeatures is empty")
	case len(core.CoreAdvantages) == 0:
		return violationf("productCoreValue.coreAdvantages is empty")
	case len(core.PainPointsSolved) == 0:
		return violationf("productCoreValue.painPointsSolved is empty")
	}

	pos := a.MarketPositioning
	switch {
	case pos == nil:
		return violationf("analysis missing marketPositioning")
	case strings.TrimSpace(pos.CulturalInsights) == "":
		return violationf("marketPositioning.culturalInsights is empty")
	case strings.TrimSpace(pos.ConsumerHabits) == "":
		return violationf("marketPositioning.consumerHabits is empty")
	}

	if len(a.CompetitorAnalysis) == 0 {
		return violationf("competitorAnalysis is empty")
	}
	for i, c := range a.CompetitorAnalysis {
		if strings.TrimSpace(c.BrandName) == "" {
			return violationf("competitorAnalysis[%d].brandName is empty", i)
		}
	}

	if len(a.BuyerPersonas) == 0 {
		return violationf("buyerPersonas is empty")
	}
	for i, p := range a.BuyerPersonas {
		if strings.TrimSpace(p.PersonaName) == "" {
			return violationf("buyerPersonas[%d].personaName is empty", i)
		}
	}

	return nil
}

func validateStrategy(c *artifact.ContentStrategy) error {
	if len(c.ContentTopics) == 0 {
		return violationf("contentTopics is empty")
	}
	for i, t := range c.ContentTopics {
		if strings.TrimSpace(t.Topic) == "" {
			return violationf("contentTopics[%d].topic is empty", i)
		}
		if t.SEOGuidance == nil {
			return violationf("contentTopics[%d].seoGuidance is missing", i)
		}
		if t.SEOGuidance.LinkingStrategy == nil {
			return violationf("contentTopics[%d].seoGuidance.linkingStrategy is missing", i)
		}
	}
	return nil
}

func validateProposals(p *artifact.PosterProposals) error {
	if len(p.Proposals) != artifact.ProposalCount {
		return violationf("proposals length = %d, want %d", len(p.Proposals), artifact.ProposalCount)
	}
	for i, prop := range p.Proposals {
		if strings.TrimSpace(prop.Title) == "" {
			return violationf("proposals[%d].title is empty", i)
		}
		if strings.TrimSpace(prop.Prompt) == "" {
			return violationf("proposals[%d].prompt is empty", i)
		}
	}
	return nil
}
