// Package main provides the newsir CLI entry point.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"newsir/internal/logging"
	"newsir/internal/tui"
)

var (
	cfgPath          string
	csvPath          string
	textColumn       string
	topK             int
	summarySentences int
	logLevel         string
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "newsir",
	Short: "News headline search and summarization tool",
	Long: `newsir indexes the text column of a CSV file with TF-IDF over unigrams
and bigrams, then answers free-text queries interactively. Each query shows
the top ranked headlines and an extractive summary of them.

Examples:
  newsir --csv data/example_news.csv
  newsir --csv news.csv --text-column title --top-k 10
  newsir search --csv news.csv "rate cut"`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "Path to YAML config file (default ./newsir.yaml or ~/.config/newsir/config.yaml)")
	pf.StringVar(&csvPath, "csv", "", "Path to CSV file with a text column")
	pf.StringVar(&textColumn, "text-column", "", "Name of the text column in the CSV (default: headline)")
	pf.IntVar(&topK, "top-k", 0, "Number of top documents to retrieve for each query (default: 5)")
	pf.IntVar(&summarySentences, "summary-sentences", 0, "Maximum number of sentences in the summary (default: 3)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	_ = rootCmd.MarkPersistentFlagRequired("csv")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer logging.Sync(a.logger)

	n, err := a.svc.IngestFile(csvPath)
	if err != nil {
		return err
	}

	m := tui.New(a.svc, a.cfg.Search.TopK, n)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
