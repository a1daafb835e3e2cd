// Package schema declares the generation contract for each pipeline stage and
// validates parsed results against the structural expectations the provider
// schema alone cannot guarantee (array cardinality, non-empty fields).
package schema

import "google.golang.org/genai"

// Stage identifies one pipeline stage with a declared output contract.
type Stage int

const (
	// StageAnalysis is the market-analysis stage.
	StageAnalysis Stage = iota
	// StageStrategy is the content-strategy stage.
	StageStrategy
	// StagePosterProposals is the poster-proposal stage.
	StagePosterProposals
)

var stageNames = map[Stage]string{
	StageAnalysis:        "analysis",
	StageStrategy:        "strategy",
	StagePosterProposals: "poster_proposals",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Contract returns the provider schema constraining generation for a stage.
// The returned value is shared and must not be mutated.
func Contract(s Stage) *genai.Schema {
	switch s {
	case StageAnalysis:
		return analysisSchema
	case StageStrategy:
		return strategySchema
	case StagePosterProposals:
		return posterProposalsSchema
	}
	return nil
}

func stringItem(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func stringArray(itemDescription string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: stringItem(itemDescription)}
}

var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"productCoreValue": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"mainFeatures":     stringArray("Key feature of the product."),
				"coreAdvantages":   stringArray("Unique selling proposition or advantage."),
				"painPointsSolved": stringArray("A specific user problem this product solves."),
			},
			Required: []string{"mainFeatures", "coreAdvantages", "painPointsSolved"},
		},
		"marketPositioning": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"culturalInsights": stringItem("Cultural factors in the target market relevant to the product."),
				"consumerHabits":   stringItem("Typical buying behaviors and preferences of consumers in the market."),
				"languageNuances":  stringItem("Specific language or slang used by the target audience."),
				"searchTrends":     stringArray("A popular search trend or keyword phrase."),
			},
			Required: []string{"culturalInsights", "consumerHabits", "languageNuances", "searchTrends"},
		},
		"competitorAnalysis": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"brandName":         {Type: genai.TypeString},
					"marketingStrategy": {Type: genai.TypeString},
					"strengths":         stringArray(""),
					"weaknesses":        stringArray(""),
				},
				Required: []string{"brandName", "marketingStrategy", "strengths", "weaknesses"},
			},
		},
		"buyerPersonas": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"personaName":  {Type: genai.TypeString},
					"demographics": {Type: genai.TypeString},
					"interests":    stringArray(""),
					"painPoints":   stringArray(""),
					"keywords":     stringArray(""),
				},
				Required: []string{"personaName", "demographics", "interests", "painPoints", "keywords"},
			},
		},
	},
	Required: []string{"productCoreValue", "marketPositioning", "competitorAnalysis", "buyerPersonas"},
}

var strategySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"contentTopics": {
			Type:        genai.TypeArray,
			Description: "A list of engaging, non-promotional content topics.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic":            stringItem("The catchy headline or title of the content piece."),
					"description":      stringItem("A brief explanation of what the content will cover and why it's valuable to the audience."),
					"focusKeyword":     stringItem("The primary SEO keyword for this topic."),
					"longTailKeywords": stringArray("A related long-tail keyword."),
					"seoGuidance": {
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"keywordDensity": stringItem("Suggested keyword density for the focus keyword, e.g., '1-2%'."),
							"semanticKeywords": {
								Type:        genai.TypeArray,
								Description: "List of LSI or semantically related keywords.",
								Items:       stringItem(""),
							},
							"linkingStrategy": {
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"internal": stringItem("Advice on internal linking."),
									"external": stringItem("Advice on external linking."),
								},
								Required: []string{"internal", "external"},
							},
						},
						Required: []string{"keywordDensity", "semanticKeywords", "linkingStrategy"},
					},
				},
				Required: []string{"topic", "description", "focusKeyword", "longTailKeywords", "seoGuidance"},
			},
		},
		"interactiveElements": {
			Type:        genai.TypeArray,
			Description: "A list of ideas for interactive elements to include on the webpage.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"type":        stringItem("The type of interactive element (e.g., 'Quiz', 'Calculator')."),
					"description": stringItem("A detailed description of the interactive element."),
				},
				Required: []string{"type", "description"},
			},
		},
		"ctaSuggestions": {
			Type:        genai.TypeArray,
			Description: "A list of natural, non-intrusive call-to-action copy suggestions.",
			Items:       stringItem(""),
		},
	},
	Required: []string{"contentTopics", "interactiveElements", "ctaSuggestions"},
}

var posterProposalsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"proposals": {
			Type:        genai.TypeArray,
			Description: "三個不同的商品海報提案",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":             stringItem("海報標題"),
					"description":       stringItem("海報設計理念和目標的描述"),
					"designConcept":     stringItem("設計概念說明"),
					"colorScheme":       stringItem("色彩方案建議"),
					"keyVisualElements": stringArray("關鍵視覺元素"),
					"textContent":       stringItem("海報上的主要文字內容"),
					"prompt":            stringItem("用於圖片生成的詳細提示詞，應包含風格、構圖、色彩、元素等詳細描述"),
				},
				Required: []string{"title", "description", "designConcept", "colorScheme", "keyVisualElements", "textContent", "prompt"},
			},
		},
	},
	Required: []string{"proposals"},
}
