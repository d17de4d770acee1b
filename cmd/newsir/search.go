package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"newsir/internal/logging"
	"newsir/internal/service"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY...",
	Short: "Run one query and print the ranked results and their summary",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer logging.Sync(a.logger)

	if _, err := a.svc.IngestFile(csvPath); err != nil {
		return err
	}
	res, err := a.svc.Query(strings.Join(args, " "), a.cfg.Search.TopK)
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), res)
	return nil
}

func printResult(w io.Writer, res service.QueryResult) {
	if len(res.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	fmt.Fprintf(w, "Top %d results:\n", len(res.Results))
	for _, r := range res.Results {
		fmt.Fprintf(w, "[%d] (score=%.4f) %s\n", r.Rank, r.Score, r.Text)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary of top results:")
	fmt.Fprintln(w, res.Summary.Text)
}
