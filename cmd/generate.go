package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"newsie/internal/ai"
	"newsie/internal/markdown"
	"newsie/internal/model"
	"newsie/internal/session"
	"newsie/internal/websearch"

	"github.com/spf13/cobra"
)

var (
	genInputFile string
	genOutputDir string
	genAPIKey    string
)

// genInput is the YAML shape of the --input file: the form content plus
// optional branding overrides.
type genInput struct {
	Input model.FormInput    `yaml:"input"`
	Brand *model.BrandConfig `yaml:"brand"`
}

// generateCmd runs the whole pipeline once from a YAML input file and writes
// the dated artifacts plus an editable draft.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a newsletter from a YAML input file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		raw, err := os.ReadFile(genInputFile)
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
		var in genInput
		if err := yaml.Unmarshal(raw, &in); err != nil {
			return fmt.Errorf("parse input file: %w", err)
		}
		brand := defaultBrand(cfg)
		if in.Brand != nil {
			brand = *in.Brand
		}

		timeout, err := time.ParseDuration(cfg.OpenAI.Timeout)
		if err != nil {
			return err
		}
		gen := ai.NewOpenAI(ai.Config{
			Model:     cfg.OpenAI.Model,
			BaseURL:   cfg.OpenAI.BaseURL,
			MaxTokens: cfg.OpenAI.MaxTokens,
			Timeout:   timeout,
		})
		var search session.Searcher
		if cfg.Search.Enabled && cfg.Search.BaseURL != "" {
			search = websearch.NewClient(cfg.Search.BaseURL, cfg.Search.MaxResults)
		}

		apiKey := genAPIKey
		if apiKey == "" {
			apiKey = cfg.OpenAI.APIKey
		}

		// One throwaway in-memory session drives the same flow the web UI uses.
		ctrl := session.NewController(gen, search, session.NewMemoryStore(), brand, apiKey)
		ctx := context.Background()
		s, err := ctrl.Create(ctx)
		if err != nil {
			return err
		}
		slog.Info("generate: calling generation service", "model", cfg.OpenAI.Model)
		s, err = ctrl.Generate(ctx, s.ID, "", in.Input, brand)
		if err != nil {
			return err
		}
		html, text, err := ctrl.Render(ctx, s.ID)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(genOutputDir, 0o755); err != nil {
			return err
		}
		dateName := time.Now().UTC().Format("20060102")
		htmlPath := filepath.Join(genOutputDir, fmt.Sprintf("newsletter_%s.html", dateName))
		textPath := filepath.Join(genOutputDir, fmt.Sprintf("newsletter_%s.txt", dateName))
		draftPath := filepath.Join(genOutputDir, fmt.Sprintf("newsletter_%s.md", dateName))

		if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
			return err
		}
		if err := os.WriteFile(textPath, []byte(text), 0o644); err != nil {
			return err
		}
		draft := markdown.Draft{
			Date:    time.Now().UTC().Format("2006-01-02"),
			CTALink: in.Input.CTALink,
			Brand:   s.Brand,
			Fields:  s.Fields,
			Body:    markdown.Preview(s.Fields, s.Brand),
		}
		if err := draft.WriteFile(draftPath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s\n", htmlPath)
		fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s\n", textPath)
		fmt.Fprintf(cmd.OutOrStdout(), "Draft:     %s\n", draftPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&genInputFile, "input", "i", "newsletter.yaml", "path to the YAML input file")
	generateCmd.Flags().StringVarP(&genOutputDir, "output", "o", ".", "directory for the generated artifacts")
	generateCmd.Flags().StringVar(&genAPIKey, "api-key", "", "API key (overrides openai.api_key from config)")
}
