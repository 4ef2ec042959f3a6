package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docqa-backend/internal/client"
	"docqa-backend/internal/render"
)

func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a UTF-8 text file and print its doc_id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			resp, err := client.New(serverURL).Upload(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return fmt.Errorf("upload: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.DocID)
			return nil
		},
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <doc_id> <question>",
		Short: "Ask a question about an uploaded document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.New(serverURL).Ask(cmd.Context(), client.AskRequest{DocID: args[0], Question: args[1]})
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
}

func summaryCmd() *cobra.Command {
	var out string
	var asText bool
	cmd := &cobra.Command{
		Use:   "summary <doc_id>",
		Short: "Download the summary PDF of an uploaded document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client.New(serverURL).SummaryPDF(cmd.Context(), client.SummaryRequest{DocID: args[0]})
			if err != nil {
				return fmt.Errorf("summary: %w", err)
			}
			if asText {
				text, err := render.PlainText(data)
				if err != nil {
					return fmt.Errorf("read summary pdf: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			pages, err := render.PageCount(data)
			if err != nil {
				return fmt.Errorf("read summary pdf: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d page(s))\n", out, pages)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "summary.pdf", "output path for the PDF")
	cmd.Flags().BoolVar(&asText, "text", false, "print the summary text instead of writing the PDF")
	return cmd
}
