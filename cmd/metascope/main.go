package main

import (
	"context"
	"fmt"
	"net/http"
	neturl "net/url"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/metascope/backend/analyzer"
	"github.com/metascope/backend/report"
)

var (
	version = "v0.1.0" // Overwritten at build time

	outputFormat string
	timeout      time.Duration
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "metascope",
		Short: "Meta tag SEO analysis",
		Long: `metascope fetches a web page, extracts its meta tags and renders an
SEO report: score, search and social previews, and improvement suggestions.`,
		SilenceUsage: true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze URL",
		Short: "Analyze a page's meta tags",
		Long: `Fetch a page and report on its meta tags.

Examples:
  # Analyze a page
  metascope analyze https://example.com

  # Machine-readable output
  metascope analyze https://example.com -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Fetch timeout")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("metascope version %s\n", version)
		},
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	url := args[0]

	if u, err := neturl.Parse(url); err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("not a valid absolute URL: %s", url)
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Analyzing %s...", url)
	if outputFormat == "human" {
		s.Start()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a := analyzer.New(analyzer.WithHTTPClient(&http.Client{Timeout: timeout}))
	analysis, err := a.AnalyzeWithContext(ctx, url)
	s.Stop()
	if err != nil {
		return err
	}

	return report.Display(analysis, outputFormat)
}
