package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chikoo0907/Legal-Aid-sub000/internal/generation/gemini"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/language"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/ratelimit"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/translation"
)

func newPreTranslateCommand() *cobra.Command {
	var outputFile string

	command := &cobra.Command{
		Use:   "pretranslate <content.json>",
		Short: "Translate static UI content into every supported language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			if cfg.Gemini.APIKey == "" {
				return fmt.Errorf("GEMINI_API_KEY environment variable is required")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("os.ReadFile(%s) > %w", args[0], err)
			}
			var content any
			if err := json.Unmarshal(data, &content); err != nil {
				return fmt.Errorf("json.Unmarshal(%s) > %w", args[0], err)
			}

			limiter := ratelimit.New(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
			backend := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.APIVersion, limiter)
			engine := translation.NewEngine(backend, translation.NewCache(), translation.Config{
				SmallBatchLimit:    cfg.Translation.SmallBatchLimit,
				ChunkSize:          cfg.Translation.ChunkSize,
				ItemBatchSize:      cfg.Translation.ItemBatchSize,
				InterLanguageDelay: cfg.Translation.InterLanguageDelay(),
			})

			fmt.Printf("Translating static content into %d languages\n", len(language.Supported))
			translations := engine.PreTranslateStatic(cmd.Context(), content)
			for _, lang := range language.Supported {
				if _, ok := translations[lang]; ok {
					color.Green("done: %s", language.Label(lang))
				} else {
					color.Red("missing: %s", language.Label(lang))
				}
			}

			out, err := json.MarshalIndent(translations, "", "  ")
			if err != nil {
				return fmt.Errorf("json.MarshalIndent() > %w", err)
			}
			if outputFile == "" {
				fmt.Println(string(out))
				return nil
			}
			if err := os.WriteFile(outputFile, out, 0o644); err != nil {
				return fmt.Errorf("os.WriteFile(%s) > %w", outputFile, err)
			}
			fmt.Printf("Wrote %s\n", outputFile)
			return nil
		},
	}

	command.Flags().StringVarP(&outputFile, "output", "o", "", "Write translations to this file instead of stdout")
	return command
}
