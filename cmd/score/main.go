// Command score runs only the page-scoring pass and prints what the
// pipeline would select. Useful for tuning against a new vendor's manuals
// without spending extraction calls.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joseph-ayodele/modbus-extractor/internal/pdftext"
	"github.com/joseph-ayodele/modbus-extractor/internal/scoring"
)

func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		file = flag.String("file", "", "PDF manual to score (required)")
		all  = flag.Bool("all", false, "print every page, not just selected ones")
	)
	flag.Parse()

	if *file == "" {
		printError("Error: --file is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	data, err := os.ReadFile(*file)
	if err != nil {
		printError("Error: read %s: %v\n", *file, err)
		os.Exit(1)
	}

	res, err := pdftext.ScorePages(context.Background(), data)
	if err != nil {
		printError("Error: scoring failed: %v\n", err)
		os.Exit(1)
	}

	selected := make(map[int]struct{})
	for _, n := range scoring.SelectPages(res.Pages) {
		selected[n] = struct{}{}
	}

	fmt.Printf("pages: %d, selected: %d, high relevance: %d\n",
		res.TotalPages, len(selected), scoring.CountHighRelevance(res.Pages))
	for _, h := range res.Hints {
		fmt.Printf("hint [%s]: %s\n", h.Kind, h.Context)
	}
	for _, p := range res.Pages {
		_, isSelected := selected[p.PageNumber]
		if !isSelected && !*all {
			continue
		}
		band := "low"
		switch {
		case scoring.IsHighRelevance(p):
			band = "high"
		case scoring.IsMediumRelevance(p):
			band = "medium"
		}
		marker := " "
		if isSelected {
			marker = "*"
		}
		fmt.Printf("%s page %4d  score %6.2f  band %-6s  table %-5v  %s\n",
			marker, p.PageNumber, p.Score, band, p.HasTableShape, p.SectionTitle)
	}
}
