package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"docqa-backend/internal/bootstrap"
	"docqa-backend/internal/render"
	"docqa-backend/internal/shared/config"
)

// probeCmd runs the configured capability against a local file without the API.
func probeCmd() *cobra.Command {
	var provider, model, question, pdfOut string
	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Run the configured LLM provider locally against a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if provider != "" {
				cfg.LLMProvider = provider
			}
			if model != "" {
				cfg.LLMModel = model
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			capability, closer, err := bootstrap.NewCapability(ctx, cfg)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer(ctx)
			}

			out := cmd.OutOrStdout()
			if strings.TrimSpace(question) != "" {
				result, err := capability.Answer(ctx, string(data), question)
				if err != nil {
					return fmt.Errorf("answer: %w", err)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			summary, err := capability.Summarize(ctx, string(data))
			if err != nil {
				return fmt.Errorf("summarize: %w", err)
			}
			fmt.Fprintln(out, summary)
			if pdfOut == "" {
				return nil
			}
			renderer, err := render.NewRenderer(render.Options{FontPath: cfg.PDFFontPath})
			if err != nil {
				return err
			}
			pdf, err := renderer.SummaryPDF(summary)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			if err := os.WriteFile(pdfOut, pdf, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(out, "wrote %s\n", pdfOut)
			return nil
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "", "override LLM_PROVIDER")
	cmd.Flags().StringVar(&model, "model", "", "override LLM_MODEL")
	cmd.Flags().StringVarP(&question, "question", "q", "", "ask this question instead of summarizing")
	cmd.Flags().StringVar(&pdfOut, "pdf", "", "also render the summary to this PDF path")
	return cmd
}
