package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aipengineer/quackmetadata/internal/app"
	"github.com/aipengineer/quackmetadata/internal/card"
	"github.com/aipengineer/quackmetadata/internal/config"
	"github.com/aipengineer/quackmetadata/internal/extract"
	"github.com/aipengineer/quackmetadata/internal/logger"
	"github.com/aipengineer/quackmetadata/internal/source"
)

// errExtractionFailed marks a run that completed but produced no valid
// metadata. main translates it to exit code 1; every other error is a
// configuration or environment problem and exits 2.
var errExtractionFailed = errors.New("extraction failed")

var (
	outputDir    string
	templatePath string
	retries      int
	dryRun       bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <document>",
	Short: "Extract metadata from a document file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg := config.Load()
		if verbose {
			cfg.LogLevel = "debug"
		}
		log := logger.NewText(cfg.LogLevel)

		client, err := app.NewLLM(cfg, log)
		if err != nil {
			return err
		}

		extCfg := extract.Config{
			CallTimeout:    cfg.LLMTimeout,
			BackoffBase:    cfg.RetryBackoff,
			MaxPromptWords: cfg.MaxPromptWords,
		}
		if templatePath != "" {
			tmpl, err := os.ReadFile(templatePath)
			if err != nil {
				return fmt.Errorf("read prompt template: %w", err)
			}
			extCfg.Template = string(tmpl)
		}

		path := args[0]
		content, err := source.FetchText(path)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

		if retries < 0 {
			retries = cfg.MaxRetries
		}
		res := extract.New(client, log, extCfg).Extract(cmd.Context(), extract.Request{
			Content: content,
			Source:  path,
			Retries: retries,
		})

		if !res.Success {
			fmt.Fprintf(os.Stderr, "Extraction failed after %d attempt(s): %s\n", res.Attempts, res.Reason)
			if res.Detail != "" {
				fmt.Fprintln(os.Stderr, res.Detail)
			}
			for _, v := range res.Violations {
				fmt.Fprintln(os.Stderr, "  -", v)
			}
			if res.Reason == extract.ReasonMaxRetries {
				return errExtractionFailed
			}
			return fmt.Errorf("%s: %s", res.Reason, res.Detail)
		}

		fmt.Println(card.Render(*res.Metadata, cfg.LLMProvider == "stub"))

		if dryRun {
			return nil
		}
		if outputDir == "" {
			outputDir = cfg.OutputDir
		}
		rec := extract.Package(path, res, time.Now().UTC())
		out := source.OutputPath(outputDir, path)
		if err := source.StoreJSON(out, rec); err != nil {
			return fmt.Errorf("write metadata record: %w", err)
		}
		fmt.Println("Metadata written to", out)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for the metadata record (default: OUTPUT_DIR)")
	extractCmd.Flags().StringVar(&templatePath, "prompt-template", "", "path to a custom prompt template")
	extractCmd.Flags().IntVar(&retries, "retries", -1, "repair/retry budget (default: MAX_RETRIES)")
	extractCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the metadata card without writing a record")
}
