package cmd

import (
	"errors"
	"log/slog"

	"deckmaker/internal/app"
	"deckmaker/pkg/config"

	"github.com/spf13/cobra"
)

var (
	genTopic    string
	genSlides   int
	genTemplate string
	genFormat   string
	genStyle    string
	genOutput   string
	genNoImages bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a presentation",
	Long:  `Generate a presentation for a topic, as a themed .pptx or a standalone HTML file.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genTopic, "topic", "t", "", "Presentation topic")
	generateCmd.Flags().IntVarP(&genSlides, "slides", "n", 0, "Number of slides (default from config)")
	generateCmd.Flags().StringVar(&genTemplate, "template", "", "Template name or .pptx path")
	generateCmd.Flags().StringVar(&genFormat, "format", app.FormatPPTX, "Output format: pptx or html")
	generateCmd.Flags().StringVar(&genStyle, "style", "", "HTML style: vibrant, modern, or dark")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output file name (default derived from topic)")
	generateCmd.Flags().BoolVar(&genNoImages, "no-images", false, "Skip image fetching, use placeholders")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genTopic == "" {
		return errors.New("please provide --topic")
	}

	ctx := cmd.Context()

	cfg := config.Load()
	if genNoImages {
		cfg.Images.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	service, err := app.BuildService(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = service.Close() }()

	pipeline := app.NewPipeline(service)
	result, err := pipeline.Generate(ctx, app.Request{
		Topic:      genTopic,
		SlideCount: genSlides,
		Template:   genTemplate,
		Format:     genFormat,
		Style:      genStyle,
		OutputName: genOutput,
		NoImages:   genNoImages,
	})
	if err != nil {
		return err
	}

	slog.Info("Presentation generated",
		"path", result.OutputPath,
		"slides", len(result.Deck.Slides),
		"images", result.ImagesUsed,
		"placeholders", result.ImagesEmpty,
	)
	return nil
}
