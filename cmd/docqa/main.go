package main

import (
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:          "docqa",
	Short:        "Upload documents, ask questions and download summaries",
	SilenceUsage: true,
}

func init() {
	def := os.Getenv("DOCQA_URL")
	if def == "" {
		def = "http://localhost:5000"
	}
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", def, "base URL of the document QA API")
	rootCmd.AddCommand(uploadCmd(), askCmd(), summaryCmd(), probeCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
