package pipeline

import (
	"fmt"
	"strings"

	"github.com/ycwang/poster-pilot/internal/artifact"
)

// productImageInstruction asks the vision model to describe the submitted
// product photo for use in the analysis prompt.
const productImageInstruction = "Describe the key visual features of the product in this image for a marketing analysis. Respond in Traditional Chinese."

// noImageDescription is embedded when no product image was supplied.
const noImageDescription = "No image provided."

// imageAnalysisFailed is embedded when the vision sub-call failed; the
// analysis proceeds without visual context.
const imageAnalysisFailed = "無法分析提供的圖片。"

// buildAnalysisPrompt serializes the product input into the market-analysis
// instruction. The target market and output language are embedded directly.
func buildAnalysisPrompt(info artifact.ProductInfo, imageDescription string) string {
	url := info.URL
	if url == "" {
		url = "Not provided. Analyze based on description."
	}

	var sb strings.Builder
	sb.WriteString("You are a professional market analyst and SEO expert. Based on the following product information and target market, provide a comprehensive market analysis.\n\n")

	sb.WriteString("**Product Information:**\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n", info.Name))
	sb.WriteString(fmt.Sprintf("- URL: %s\n", url))
	sb.WriteString(fmt.Sprintf("- Description & Features: %s\n", info.Description))
	sb.WriteString(fmt.Sprintf("- Visual Analysis from Image: %s\n\n", imageDescription))

	sb.WriteString(fmt.Sprintf("**Target Market:** %s\n\n", info.Market))

	sb.WriteString("**Instructions:**\n")
	sb.WriteString("If a product URL is provided, use it as the primary source of truth and context for the product's features, branding, and value proposition. Synthesize the information from the URL with the provided description. If you cannot access URLs, use the provided text information and the URL as a strong contextual reference.\n\n")

	sb.WriteString("**Task:**\n")
	sb.WriteString("1. **Product Core Value:** Distill the main features, core advantages, and the user pain points it solves.\n")
	sb.WriteString("2. **Target Market Positioning:** Analyze local culture, consumer habits, language, and search trends for the specified market.\n")
	sb.WriteString("3. **Competitor Analysis:** Identify 3 major competitors. Analyze their marketing, strengths, and weaknesses.\n")
	sb.WriteString("4. **Buyer Personas:** Create 3 detailed buyer personas, including their demographics, interests, pain points, and keywords they would search for.\n\n")

	sb.WriteString("Return the entire analysis in a single, valid JSON object that strictly adheres to the provided schema. Do not include any text or markdown formatting outside of the JSON object. The content within the JSON MUST be in Traditional Chinese (繁體中文).\n")

	return sb.String()
}

// buildStrategyPrompt serializes the analysis context into the
// content-strategy instruction.
func buildStrategyPrompt(analysis *artifact.AnalysisResult) string {
	core := analysis.ProductCoreValue

	var personas strings.Builder
	for _, p := range analysis.BuyerPersonas {
		personas.WriteString(fmt.Sprintf("- %s (%s): Interested in %s. Searches for keywords like: %s.\n",
			p.PersonaName, p.Demographics,
			strings.Join(p.Interests, ", "),
			strings.Join(p.Keywords, ", ")))
	}

	var sb strings.Builder
	sb.WriteString("You are a senior content strategist and SEO expert. Based on the detailed market analysis provided below, create a content and engagement strategy for a webpage.\n\n")

	sb.WriteString("**Market Analysis Context:**\n")
	sb.WriteString(fmt.Sprintf("- **Product Core Value:** Main Features: %s; Core Advantages: %s; Pain Points Solved: %s.\n",
		strings.Join(core.MainFeatures, ", "),
		strings.Join(core.CoreAdvantages, ", "),
		strings.Join(core.PainPointsSolved, ", ")))
	sb.WriteString("- **Target Audience (Personas):**\n")
	sb.WriteString(personas.String())
	sb.WriteString("\n")

	sb.WriteString("**Your Task:**\n")
	sb.WriteString("1. **Content Topics:** Brainstorm 3 distinct, non-promotional content topics that address the audience's pain points and interests. For each topic, provide a catchy title, a brief description, a primary focus keyword, and 5-7 related long-tail keywords.\n")
	sb.WriteString("2. **SEO Guidance (for each topic):**\n")
	sb.WriteString("   - **Keyword Density:** Suggest an optimal keyword density for the focus keyword (e.g., \"1-2%\").\n")
	sb.WriteString("   - **Semantic Keywords:** List 5-7 semantically related keywords (LSI keywords) to build topical authority.\n")
	sb.WriteString("   - **Linking Strategy:** Briefly describe a smart internal linking and external linking strategy.\n")
	sb.WriteString("3. **Interactive Elements:** Propose 2-3 engaging interactive elements for the webpage (e.g., quizzes, calculators). Describe each one.\n")
	sb.WriteString("4. **Call-to-Action (CTA) Copy:** Write 3 natural, non-intrusive CTA copy examples.\n\n")

	sb.WriteString("Return the entire strategy in a single, valid JSON object that strictly adheres to the provided schema. Do not include any text or markdown formatting outside of the JSON object. The content within the JSON MUST be in Traditional Chinese (繁體中文).\n")

	return sb.String()
}

// buildPosterPrompt serializes the product, analysis and strategy into the
// poster-proposal instruction. The instruction itself is written in the
// output language.
func buildPosterPrompt(info artifact.ProductInfo, analysis *artifact.AnalysisResult, strategy *artifact.ContentStrategy) string {
	core := analysis.ProductCoreValue

	personaNames := make([]string, 0, len(analysis.BuyerPersonas))
	for _, p := range analysis.BuyerPersonas {
		personaNames = append(personaNames, fmt.Sprintf("%s (%s)", p.PersonaName, p.Demographics))
	}

	topics := make([]string, 0, len(strategy.ContentTopics))
	for _, t := range strategy.ContentTopics {
		topics = append(topics, t.Topic)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("你是一位專業的視覺設計師和行銷專家，專精於商品海報設計。根據以下詳細的市場分析和內容策略，為產品「%s」創建三個不同風格的商品海報提案。\n\n", info.Name))

	sb.WriteString("**產品資訊：**\n")
	sb.WriteString(fmt.Sprintf("- 產品名稱：%s\n", info.Name))
	sb.WriteString(fmt.Sprintf("- 產品描述：%s\n", info.Description))
	sb.WriteString(fmt.Sprintf("- 目標市場：%s\n\n", info.Market))

	sb.WriteString("**市場分析：**\n")
	sb.WriteString("- **產品核心價值：**\n")
	sb.WriteString(fmt.Sprintf("  - 主要特色：%s\n", strings.Join(core.MainFeatures, "、")))
	sb.WriteString(fmt.Sprintf("  - 核心優勢：%s\n", strings.Join(core.CoreAdvantages, "、")))
	sb.WriteString(fmt.Sprintf("  - 解決的痛點：%s\n", strings.Join(core.PainPointsSolved, "、")))
	sb.WriteString(fmt.Sprintf("- **目標受眾：** %s\n", strings.Join(personaNames, "、")))
	sb.WriteString(fmt.Sprintf("- **市場定位：** %s\n", analysis.MarketPositioning.CulturalInsights))
	sb.WriteString(fmt.Sprintf("- **消費習慣：** %s\n\n", analysis.MarketPositioning.ConsumerHabits))

	sb.WriteString("**內容策略：**\n")
	sb.WriteString(fmt.Sprintf("- **內容主題：** %s\n", strings.Join(topics, "、")))
	sb.WriteString(fmt.Sprintf("- **CTA 建議：** %s\n\n", strings.Join(strategy.CTASuggestions, "、")))

	sb.WriteString("**任務要求：**\n")
	sb.WriteString("請創建三個風格迥異的海報提案，每個提案都應該包含：\n")
	sb.WriteString("1. **標題**：吸引人的海報標題\n")
	sb.WriteString("2. **描述**：說明這個海報的設計理念和目標受眾\n")
	sb.WriteString("3. **設計概念**：詳細的設計概念說明（風格、氛圍、視覺重點）\n")
	sb.WriteString("4. **色彩方案**：建議的色彩搭配（例如：主色、輔色、強調色）\n")
	sb.WriteString("5. **關鍵視覺元素**：列出 3-5 個關鍵的視覺元素（例如：產品圖、圖示、背景、裝飾元素等）\n")
	sb.WriteString("6. **文字內容**：海報上要顯示的主要文字內容（標題、副標題、說明文字等）\n")
	sb.WriteString("7. **提示詞**：用於圖片生成的詳細提示詞，應包含風格描述、構圖方式、色彩描述、視覺元素、文字呈現方式，以及整體氛圍和情感傳達\n\n")

	sb.WriteString("三個提案應該有不同的風格定位：\n")
	sb.WriteString("- 提案一：專業、現代、簡約風格\n")
	sb.WriteString("- 提案二：創意、活潑、吸引眼球風格\n")
	sb.WriteString("- 提案三：情感訴求、故事性、溫馨風格\n\n")

	sb.WriteString("所有內容必須使用繁體中文。\n")
	sb.WriteString("返回完整的 JSON 物件，嚴格遵守提供的 schema。不要包含任何 JSON 之外的文字或 Markdown 格式。\n")

	return sb.String()
}
