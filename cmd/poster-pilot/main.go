package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ycwang/poster-pilot/internal/apperr"
	"github.com/ycwang/poster-pilot/internal/artifact"
	"github.com/ycwang/poster-pilot/internal/config"
	"github.com/ycwang/poster-pilot/internal/filehandler"
	"github.com/ycwang/poster-pilot/internal/gateway"
	"github.com/ycwang/poster-pilot/internal/logging"
	"github.com/ycwang/poster-pilot/internal/pipeline"
	"github.com/ycwang/poster-pilot/internal/synth"
)

// CLI flags
var (
	nameFlag        string
	descriptionFlag string
	marketFlag      string
	urlFlag         string
	imageFlag       string
	sizeFlag        string
	scriptFlag      string
	outFlag         string
	skipImagesFlag  bool
)

// rootCmd is the main Cobra command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "poster-pilot",
	Short: "AI-powered marketing poster generation",
	Long: `Poster Pilot turns a product description into marketing artifacts:
a market analysis for the target market, a content and SEO strategy,
three poster design proposals, and rendered poster images.

All generated text is in Traditional Chinese. The image model is chosen
automatically from the script of each poster's text.

Examples:
  poster-pilot --name "冷萃咖啡壺" --description "一鍵冷萃，四小時完成冰滴風味" --market "台灣"
  poster-pilot -n "Trail Runner X" -d "Lightweight trail shoe with grip outsole" -m "United States" --size 1080x1920
  poster-pilot --name "保溫瓶" --description "雙層真空不鏽鋼，保冷24小時" --market "香港" --image product.jpg
  poster-pilot  # Interactive mode - prompts for product details`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Product name")
	rootCmd.Flags().StringVarP(&descriptionFlag, "description", "d", "", "Product description and features")
	rootCmd.Flags().StringVarP(&marketFlag, "market", "m", "", "Target market (e.g., '台灣', 'Japan')")
	rootCmd.Flags().StringVarP(&urlFlag, "url", "u", "", "Product page URL (optional)")
	rootCmd.Flags().StringVarP(&imageFlag, "image", "i", "", "Product image file (optional)")
	rootCmd.Flags().StringVar(&sizeFlag, "size", string(artifact.SizeSquare), "Poster size: 1080x1080, 1080x1350, 1080x1920 or 1920x1080")
	rootCmd.Flags().StringVar(&scriptFlag, "script", string(synth.ScriptAuto), "Poster text script: auto, latin or cjk")
	rootCmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output directory for rendered posters")
	rootCmd.Flags().BoolVar(&skipImagesFlag, "skip-images", false, "Stop after the poster proposals, without rendering images")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMain is the main execution logic called by Cobra.
func runMain(cmd *cobra.Command, args []string) {
	start := time.Now()
	logging.Init()

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	if outFlag != "" {
		cfg.OutputDir = outFlag
	}

	info := collectProductInfo()
	if err := info.Validate(); err != nil {
		fatal(err)
	}

	logging.NewStartupLogger("poster-pilot").
		Model("stages", gateway.StageModel()).
		Model("imageFast", gateway.ModelImagenFast).
		Model("imageText", gateway.ModelImagenText).
		Feature("skipImages", skipImagesFlag).
		Config("size", sizeFlag).
		Config("script", scriptFlag).
		Config("outputDir", cfg.OutputDir).
		InitDuration(time.Since(start)).
		Log()

	gw := gateway.New(gateway.NewClientCache(), gateway.StaticCredential(cfg.GeminiAPIKey))

	ctx := context.Background()
	if err := validateCredential(ctx, gw, cfg.RequestTimeout); err != nil {
		fatal(err)
	}
	log.Info().Msg("credential validation complete - ready for operations")

	orch := pipeline.New(gw)

	analysis := runStage(ctx, cfg.RequestTimeout, "market analysis", func(ctx context.Context) (*artifact.AnalysisResult, error) {
		return orch.Analyze(ctx, info)
	})
	printAnalysis(analysis)

	strategy := runStage(ctx, cfg.RequestTimeout, "content strategy", func(ctx context.Context) (*artifact.ContentStrategy, error) {
		return orch.Strategize(ctx)
	})
	printStrategy(strategy)

	proposals := runStage(ctx, cfg.RequestTimeout, "poster proposals", func(ctx context.Context) ([]artifact.PosterProposal, error) {
		return orch.ProposePosters(ctx)
	})
	printProposals(proposals)

	if skipImagesFlag {
		log.Info().Msg("skipping poster rendering")
		return
	}

	renderPosters(ctx, cfg, gw, info, proposals)
}

// collectProductInfo assembles the product input from flags, prompting
// interactively for any required field left empty.
func collectProductInfo() artifact.ProductInfo {
	info := artifact.ProductInfo{
		Name:        strings.TrimSpace(nameFlag),
		Description: strings.TrimSpace(descriptionFlag),
		Market:      strings.TrimSpace(marketFlag),
		URL:         strings.TrimSpace(urlFlag),
	}

	reader := bufio.NewReader(os.Stdin)
	if info.Name == "" {
		info.Name = promptLine(reader, "Product name: ")
	}
	if info.Description == "" {
		info.Description = promptLine(reader, "Product description (at least 10 characters): ")
	}
	if info.Market == "" {
		info.Market = promptLine(reader, "Target market (e.g., '台灣'): ")
	}

	if imageFlag != "" {
		img, err := filehandler.LoadProductImage(imageFlag)
		if err != nil {
			log.Fatal().Err(err).Str("path", imageFlag).Msg("failed to load product image")
		}
		info.Image = img
	}

	return info
}

func promptLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Warn().Err(err).Msg("failed to read input")
		return ""
	}
	return strings.TrimSpace(input)
}

func validateCredential(ctx context.Context, gw *gateway.Gateway, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return gw.Validate(ctx)
}

// runStage executes one pipeline stage under its own timeout and exits
// fatally with the localized message on failure.
func runStage[T any](ctx context.Context, timeout time.Duration, name string, fn func(context.Context) (T, error)) T {
	stageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fmt.Printf("\n⏳ Generating %s...\n", name)
	result, err := fn(stageCtx)
	if err != nil {
		fatal(err)
	}
	return result
}

// renderPosters renders all proposals concurrently and saves the resulting
// assets into the output directory.
func renderPosters(ctx context.Context, cfg config.Config, gw *gateway.Gateway, info artifact.ProductInfo, proposals []artifact.PosterProposal) {
	store, err := synth.NewAssetStore("")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create asset store")
	}
	defer store.ReleaseAll()

	engine := synth.NewEngine(gw, store)
	size := artifact.PosterSize(sizeFlag)
	script := synth.ScriptMode(scriptFlag)

	renderCtx, cancel := context.WithTimeout(ctx, cfg.RenderTimeout)
	defer cancel()

	g, renderCtx := errgroup.WithContext(renderCtx)
	g.SetLimit(cfg.MaxConcurrent)

	assets := make([]*synth.Asset, len(proposals))
	for i, proposal := range proposals {
		g.Go(func() error {
			asset, err := engine.Render(renderCtx, synth.Request{
				Proposal:  i,
				Prompt:    proposal.Prompt,
				Size:      size,
				Reference: info.Image,
				Script:    script,
			})
			if err != nil {
				// A safety rejection on one poster should not cancel the rest.
				var ae *apperr.Error
				if errors.As(err, &ae) && ae.Kind == apperr.ContentSafetyRejected {
					log.Error().Int("proposal", i).Str("reason", ae.Reason).Msg(ae.UserMessage)
					return nil
				}
				return err
			}
			assets[i] = asset
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fatal(err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.OutputDir).Msg("failed to create output directory")
	}

	fmt.Println()
	fmt.Println("============================================")
	fmt.Println("🖼  Rendered Posters")
	fmt.Println("============================================")
	for i, asset := range assets {
		if asset == nil {
			fmt.Printf("Proposal %d: not rendered\n", i+1)
			continue
		}
		data, err := asset.Bytes()
		if err != nil {
			log.Fatal().Err(err).Int("proposal", i).Msg("failed to read rendered poster")
		}
		out := filepath.Join(cfg.OutputDir, fmt.Sprintf("poster-%d%s", i+1, filepath.Ext(asset.Path)))
		if err := os.WriteFile(out, data, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", out).Msg("failed to save poster")
		}
		fmt.Printf("Proposal %d: %s (%dx%d, %s)\n", i+1, out, asset.Width, asset.Height, asset.MIMEType)
	}
}

func printAnalysis(a *artifact.AnalysisResult) {
	fmt.Println()
	fmt.Println("============================================")
	fmt.Println("📊 Market Analysis")
	fmt.Println("============================================")
	fmt.Printf("Main features: %s\n", strings.Join(a.ProductCoreValue.MainFeatures, "、"))
	fmt.Printf("Core advantages: %s\n", strings.Join(a.ProductCoreValue.CoreAdvantages, "、"))
	fmt.Printf("Pain points solved: %s\n", strings.Join(a.ProductCoreValue.PainPointsSolved, "、"))
	fmt.Printf("Cultural insights: %s\n", a.MarketPositioning.CulturalInsights)
	fmt.Printf("Consumer habits: %s\n", a.MarketPositioning.ConsumerHabits)
	fmt.Println("Competitors:")
	for _, c := range a.CompetitorAnalysis {
		fmt.Printf("  - %s: %s\n", c.BrandName, c.MarketingStrategy)
	}
	fmt.Println("Buyer personas:")
	for _, p := range a.BuyerPersonas {
		fmt.Printf("  - %s (%s)\n", p.PersonaName, p.Demographics)
	}
}

func printStrategy(s *artifact.ContentStrategy) {
	fmt.Println()
	fmt.Println("============================================")
	fmt.Println("📝 Content Strategy")
	fmt.Println("============================================")
	for i, t := range s.ContentTopics {
		fmt.Printf("Topic %d: %s\n", i+1, t.Topic)
		fmt.Printf("  Focus keyword: %s\n", t.FocusKeyword)
		fmt.Printf("  %s\n", t.Description)
	}
	fmt.Println("Interactive elements:")
	for _, e := range s.InteractiveElements {
		fmt.Printf("  - %s: %s\n", e.Type, e.Description)
	}
	fmt.Printf("CTA suggestions: %s\n", strings.Join(s.CTASuggestions, " / "))
}

func printProposals(proposals []artifact.PosterProposal) {
	fmt.Println()
	fmt.Println("============================================")
	fmt.Println("🎨 Poster Proposals")
	fmt.Println("============================================")
	for i, p := range proposals {
		fmt.Printf("Proposal %d: %s\n", i+1, p.Title)
		fmt.Printf("  %s\n", p.Description)
		fmt.Printf("  Design concept: %s\n", p.DesignConcept)
		fmt.Printf("  Color scheme: %s\n", p.ColorScheme)
		fmt.Printf("  Key visuals: %s\n", strings.Join(p.KeyVisualElements, "、"))
		fmt.Printf("  Text content: %s\n", p.TextContent)
	}
}

// fatal prints the localized user message for err and exits.
func fatal(err error) {
	kind, userMessage := apperr.Classify(err)
	log.Error().Err(err).Str("kind", kind.String()).Msg("run failed")
	fmt.Fprintln(os.Stderr, userMessage)
	os.Exit(1)
}
